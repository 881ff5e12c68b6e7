package convert

import (
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// listTables returns user tables of the database in order of creation.
func listTables(conn *sqlite.Conn) ([]string, error) {
	var names []string
	err := sqlitex.Execute(conn,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\' ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list tables: %w", err)
	}
	return names, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// readTable calls fn with column names first and then with every row of the
// table. Values keep their storage class: int64, float64, string, blob or nil.
func readTable(conn *sqlite.Conn, name string, fn recordFunc) error {
	var header []any
	err := sqlitex.Execute(conn, `SELECT name FROM pragma_table_info(?) ORDER BY cid`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				header = append(header, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return fmt.Errorf("unable to read columns of %s: %w", name, err)
	}
	if err := fn(header); err != nil {
		return err
	}

	rec := make([]any, 0, len(header))
	err = sqlitex.Execute(conn, `SELECT * FROM `+quoteIdent(name),
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			rec = rec[:0]
			for i := range stmt.ColumnCount() {
				switch stmt.ColumnType(i) {
				case sqlite.TypeInteger:
					rec = append(rec, stmt.ColumnInt64(i))
				case sqlite.TypeFloat:
					rec = append(rec, stmt.ColumnFloat(i))
				case sqlite.TypeText:
					rec = append(rec, stmt.ColumnText(i))
				case sqlite.TypeBlob:
					rec = append(rec, blob(stmt.ColumnLen(i)))
				default:
					rec = append(rec, nil)
				}
			}
			return fn(rec)
		}})
	if err != nil {
		return fmt.Errorf("unable to read rows of %s: %w", name, err)
	}
	return nil
}
