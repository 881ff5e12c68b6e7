package convert

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// number of bytes filetype needs to recognize any of known types
const sniffLen = 262

type sourceKind int

const (
	kindUnknown sourceKind = iota
	kindText
	kindArchive
	kindDatabase
)

func (k sourceKind) String() string {
	switch k {
	case kindText:
		return "csv"
	case kindArchive:
		return "zip"
	case kindDatabase:
		return "sqlite"
	default:
		return "unknown"
	}
}

// textExts lists extensions of delimited text files we convert.
var textExts = map[string]rune{
	".csv": 0,
	".txt": 0,
	".tsv": '\t',
	".tab": '\t',
}

// isTextName reports whether name looks like delimited text by extension.
func isTextName(name string) bool {
	_, ok := textExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// delimiterFor returns delimiter implied by file extension or def.
func delimiterFor(name string, def rune) rune {
	if d := textExts[strings.ToLower(filepath.Ext(name))]; d != 0 {
		return d
	}
	return def
}

func sniff(r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "", nil
	}
	return kind.Extension, nil
}

// detectFile looks at file content and name to decide how to convert it.
func detectFile(path string) (sourceKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return kindUnknown, err
	}
	defer f.Close()

	ext, err := sniff(f)
	if err != nil {
		return kindUnknown, fmt.Errorf("unable to read file header: %w", err)
	}
	switch ext {
	case "zip":
		if strings.EqualFold(filepath.Ext(path), ".zip") {
			return kindArchive, nil
		}
	case "sqlite":
		return kindDatabase, nil
	case "":
		if isTextName(path) {
			return kindText, nil
		}
	}
	return kindUnknown, nil
}

// isArchiveFile reports whether path is zip archive we could look into.
func isArchiveFile(path string) (bool, error) {
	kind, err := detectFile(path)
	if err != nil {
		return false, err
	}
	return kind == kindArchive, nil
}

// isTextInArchive reports whether archive entry is delimited text. Binary
// content with text extension is rejected.
func isTextInArchive(f *zip.File) (bool, error) {
	if !isTextName(f.Name) {
		return false, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	ext, err := sniff(r)
	if err != nil {
		return false, err
	}
	return ext == "", nil
}
