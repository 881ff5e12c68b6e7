package convert

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"odsw/config"
)

// how much of the input is examined when encoding is detected
const sniffWindow = 64 * 1024

// recordFunc receives single source row. Record is reused between calls.
type recordFunc func(record []any) error

// decodeInput wraps r so it produces UTF-8. Explicitly forced code page has
// priority over encoding name from configuration, "auto" looks at byte order
// marks and content.
func decodeInput(r io.Reader, cp encoding.Encoding, name string) (io.Reader, error) {
	if cp != nil {
		return transform.NewReader(r, cp.NewDecoder()), nil
	}
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return r, nil
	case "auto":
		br := bufio.NewReaderSize(r, sniffWindow)
		if enc := sniffEncoding(br); enc != nil {
			return transform.NewReader(br, enc.NewDecoder()), nil
		}
		return br, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown input encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported input encoding %q", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// sniffEncoding returns nil when buffered input is UTF-8.
func sniffEncoding(br *bufio.Reader) encoding.Encoding {
	peek, err := br.Peek(sniffWindow)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil
	}
	enc, name, certain := charset.DetermineEncoding(peek, "text/csv")
	if certain {
		if name == "utf-8" {
			return nil
		}
		return enc
	}
	if validUTF8Prefix(peek) {
		return nil
	}
	return enc
}

// validUTF8Prefix checks b ignoring rune which may be cut at the end.
func validUTF8Prefix(b []byte) bool {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				b = b[:i]
			}
			break
		}
	}
	return utf8.Valid(b)
}

// readCSV parses delimited text calling fn for every record. Name of the
// source selects delimiter for tab separated files.
func readCSV(ctx context.Context, r io.Reader, name string, in *config.InputConfig, cp encoding.Encoding, fn recordFunc) error {
	dr, err := decodeInput(r, cp, in.Encoding)
	if err != nil {
		return err
	}

	comma, _ := utf8.DecodeRuneInString(in.Delimiter)
	cr := csv.NewReader(dr)
	cr.Comma = delimiterFor(name, comma)
	if in.Comment != "" {
		cr.Comment, _ = utf8.DecodeRuneInString(in.Comment)
	}
	cr.LazyQuotes = in.LazyQuotes
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	rec := make([]any, 0, 16)
	for first := true; ; first = false {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("unable to parse %s: %w", name, err)
		}
		if first && len(fields) > 0 {
			fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
		}
		rec = rec[:0]
		for _, f := range fields {
			rec = append(rec, f)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
