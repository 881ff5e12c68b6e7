package table

import (
	"strconv"
	"strings"
)

// ColumnName converts zero based column index to letters: 0 -> A, 26 -> AA.
func ColumnName(col int) string {
	var buf [8]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}

// CellAddress returns A1 style address of zero based position.
func CellAddress(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// quoteTableName quotes table name as required by range addresses.
func quoteTableName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// Address returns range address qualified by table name, for example
// 'Sheet 1'.A1:'Sheet 1'.C10.
func (r Range) Address(table string) string {
	q := quoteTableName(table)
	return q + "." + CellAddress(r.FirstRow, r.FirstCol) + ":" + q + "." + CellAddress(r.LastRow, r.LastCol)
}
