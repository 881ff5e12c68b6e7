// Package archive writes and reads zip packages.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
)

var ErrNoPart = errors.New("no open part")

// Writer streams named parts into zip archive. Stored parts are buffered
// and written with precomputed checksum so they carry no data descriptor,
// this keeps "mimetype" readable at a fixed offset.
type Writer struct {
	zw       *zip.Writer
	modified time.Time
	current  io.Writer
	stored   *storedPart
	parts    []string
	closed   bool
}

type storedPart struct {
	name string
	buf  bytes.Buffer
}

// NewWriter creates archive writer. Level is a flate compression level
// (flate.NoCompression...flate.BestCompression, flate.DefaultCompression).
func NewWriter(w io.Writer, level int) *Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &Writer{zw: zw, modified: time.Now()}
}

// OpenPart finishes current part and starts a new one.
func (w *Writer) OpenPart(name string, store bool) error {
	if w.closed {
		return fmt.Errorf("unable to open %s: %w", name, ErrNoPart)
	}
	if err := w.flushStored(); err != nil {
		return err
	}
	w.parts = append(w.parts, name)
	if store {
		w.stored = &storedPart{name: name}
		w.current = &w.stored.buf
		return nil
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: w.modified,
	})
	if err != nil {
		return fmt.Errorf("unable to create part %s: %w", name, err)
	}
	w.current = fw
	return nil
}

func (w *Writer) flushStored() error {
	if w.stored == nil {
		return nil
	}
	sp := w.stored
	w.stored, w.current = nil, nil

	data := sp.buf.Bytes()
	// no modification time, it would add extra field
	fh := &zip.FileHeader{
		Name:               sp.name,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	}
	fw, err := w.zw.CreateRaw(fh)
	if err != nil {
		return fmt.Errorf("unable to create part %s: %w", sp.name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("unable to write part %s: %w", sp.name, err)
	}
	return nil
}

// Write appends p to the current part.
func (w *Writer) Write(p []byte) error {
	if w.current == nil {
		return ErrNoPart
	}
	_, err := w.current.Write(p)
	return err
}

// FinalizeAndClose writes archive directory. Underlying writer is not
// closed.
func (w *Writer) FinalizeAndClose() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.flushStored(); err != nil {
		return err
	}
	w.current = nil
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("unable to finalize archive: %w", err)
	}
	return nil
}

// Parts returns names of parts in the order they were opened.
func (w *Writer) Parts() []string {
	return w.parts
}
