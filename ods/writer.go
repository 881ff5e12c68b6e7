// Package ods streams OpenDocument spreadsheets. Content of a table is
// rendered as soon as the caller moves past it and written into the package by
// a separate goroutine, so memory use does not depend on document size.
package ods

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"odsw/archive"
	"odsw/config"
	"odsw/container"
	"odsw/flush"
	"odsw/misc"
	"odsw/registry"
	"odsw/style"
	"odsw/table"
	"odsw/xmlutil"
)

const MimeType = "application/vnd.oasis.opendocument.spreadsheet"

var (
	ErrClosed    = errors.New("document is closed")
	ErrNoTable   = errors.New("no such table")
	ErrTableName = errors.New("invalid table name")
)

// Writer builds single document. It is not safe for concurrent use: one
// goroutine builds content while Writer internally runs another one writing
// the package.
type Writer struct {
	log       *zap.Logger
	util      *xmlutil.Util
	reg       *registry.Registry
	styles    *table.Styles
	flushRows int

	tables  *container.Container[string, *table.Table]
	current *table.Table
	active  string

	pipe   *flush.Pipeline
	group  *errgroup.Group
	cancel context.CancelFunc

	id        uuid.UUID
	created   time.Time
	generator string
	title     string
	creator   string
	locale    language.Tag

	prelude bool
	closed  bool

	// set by Create
	file    *os.File
	target  string
	fixZip  bool
	written int64
}

// NewWriter starts document streamed into out. Out is not closed by Writer.
func NewWriter(ctx context.Context, out io.Writer, cfg *config.DocumentConfig, log *zap.Logger) (*Writer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate document UUID: %w", err)
	}

	defaults := style.NewDefaults(cfg.Page.PageOptions())
	if cfg.ColumnWidth != "" && cfg.ColumnWidth != style.DefaultColumnWidth {
		defaults.Column = style.NewTableColumnStyle(style.DefaultColumnStyleName, cfg.ColumnWidth, defaults.Cell)
	}
	locale := cfg.Language()
	data := style.NewDataStyles(locale, cfg.Currency)

	reg := registry.New()
	if err := registerDefaults(reg, defaults, data); err != nil {
		return nil, fmt.Errorf("unable to register default styles: %w", err)
	}

	w := &Writer{
		log:       log,
		util:      xmlutil.New(),
		reg:       reg,
		styles:    &table.Styles{Source: reg, Defaults: defaults, Data: data},
		flushRows: max(cfg.FlushRows, 1),
		tables:    container.New[string, *table.Table](),
		id:        id,
		created:   time.Now(),
		generator: cfg.Generator,
		title:     cfg.Title,
		creator:   cfg.Creator,
		locale:    locale,
	}
	if w.generator == "" {
		w.generator = misc.Generator()
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.group, ctx = errgroup.WithContext(ctx)
	w.pipe = flush.New(archive.NewWriter(out, cfg.CompressionLevel), log.Named("flush"))
	w.group.Go(func() error {
		return w.pipe.Run(ctx)
	})

	if err := w.pipe.Enqueue(flush.NewPartUnit("mimetype", true, []byte(MimeType))); err != nil {
		w.cancel()
		return nil, multierr.Append(err, w.group.Wait())
	}
	log.Debug("Document started", zap.Stringer("id", id), zap.Int("flush_rows", w.flushRows))
	return w, nil
}

// Create starts document written to file path. With cfg.FixZip document is
// written to temporary file first and copied to path without data
// descriptors on Close.
func Create(ctx context.Context, path string, cfg *config.DocumentConfig, log *zap.Logger) (*Writer, error) {
	var (
		f   *os.File
		err error
	)
	if cfg.FixZip {
		f, err = os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	} else {
		f, err = os.Create(path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}
	w, err := NewWriter(ctx, f, cfg, log)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	w.file, w.target, w.fixZip = f, path, cfg.FixZip
	return w, nil
}

func registerDefaults(reg *registry.Registry, defaults *style.Defaults, data *style.DataStyles) error {
	steps := []func() error{
		func() error { return reg.RegisterPageStyle(defaults.Page, container.ModeCreate) },
		func() error { return reg.AddContentStyle(defaults.Table) },
		func() error { return reg.AddContentStyle(defaults.Row) },
		func() error { return reg.AddContentStyle(defaults.Column) },
		func() error { return reg.AddCommonStyle(defaults.Cell) },
	}
	for _, ds := range data.All() {
		steps = append(steps, func() error { return reg.RegisterDataStyle(ds, container.ModeCreate) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Defaults returns default styles of the document.
func (w *Writer) Defaults() *style.Defaults { return w.styles.Defaults }

// DataStyles returns data styles applied to typed cells by default.
func (w *Writer) DataStyles() *style.DataStyles { return w.styles.Data }

// ID returns document identifier stored in metadata.
func (w *Writer) ID() uuid.UUID { return w.id }

func (w *Writer) SetTitle(title string)     { w.title = title }
func (w *Writer) SetCreator(creator string) { w.creator = creator }

// RegisterStyle makes object style available to the document: hidden styles
// become automatic styles of content, visible ones common styles. Styles
// must be registered before first table content is flushed.
func (w *Writer) RegisterStyle(s style.ObjectStyle) error {
	if w.closed {
		return ErrClosed
	}
	return w.reg.EnsureRegistered(s)
}

// AddDataStyle registers data style for explicit use by cells.
func (w *Writer) AddDataStyle(ds style.DataStyle) error {
	if w.closed {
		return ErrClosed
	}
	return w.reg.RegisterDataStyle(ds, container.ModeCreate)
}

// AddPageStyle registers additional page layout with its master page.
// Tables refer to master page through table style.
func (w *Writer) AddPageStyle(ps *style.PageStyle) error {
	if w.closed {
		return ErrClosed
	}
	return w.reg.RegisterPageStyle(ps, container.ModeCreate)
}

// InternCellStyle returns composite of base cell style and data style.
func (w *Writer) InternCellStyle(base *style.TableCellStyle, ds style.DataStyle) (*style.TableCellStyle, error) {
	if w.closed {
		return nil, ErrClosed
	}
	return w.reg.InternCompositeCellStyle(base, ds)
}

func checkTableName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `[]*?:/\`) {
		return fmt.Errorf("%q: %w", name, ErrTableName)
	}
	return nil
}

// AddTable finishes current table and starts new one. Rows of finished table
// are no longer accessible.
func (w *Writer) AddTable(name string) (*table.Table, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if err := checkTableName(name); err != nil {
		return nil, err
	}
	if _, exists := w.tables.Get(name); exists {
		return nil, fmt.Errorf("table %s: %w", name, container.ErrDuplicateKey)
	}
	if err := w.finishTable(); err != nil {
		return nil, err
	}

	t := table.New(name, w.styles)
	t.Observe(w.flushRows, w.flushReady)
	if err := w.tables.Add(name, t, container.ModeCreate); err != nil {
		return nil, err
	}
	w.current = t
	if w.active == "" {
		w.active = name
	}
	w.log.Debug("Table added", zap.String("name", name))
	return t, nil
}

// Table returns table by name.
func (w *Writer) Table(name string) (*table.Table, bool) {
	return w.tables.Get(name)
}

// TableNames returns names of tables in document order.
func (w *Writer) TableNames() []string {
	return w.tables.Keys()
}

// SetActiveTable selects table shown when document is opened.
func (w *Writer) SetActiveTable(name string) error {
	if _, ok := w.tables.Get(name); !ok {
		return fmt.Errorf("table %s: %w", name, ErrNoTable)
	}
	w.active = name
	return nil
}

func (w *Writer) enqueue(u *flush.Unit) error {
	return w.pipe.Enqueue(u)
}

// flushReady is called by current table once enough rows are ready.
func (w *Writer) flushReady(t *table.Table) error {
	if t != w.current {
		return nil
	}
	rows := t.Drain(w.flushRows)
	if len(rows) == 0 {
		return nil
	}
	if err := w.beginTable(t); err != nil {
		return err
	}
	return w.enqueue(flush.RenderRows(w.util, rows))
}

func (w *Writer) beginTable(t *table.Table) error {
	if t.Started() {
		return nil
	}
	if err := w.ensurePrelude(); err != nil {
		return err
	}
	var b bytes.Buffer
	t.AppendBegin(w.util, &b)
	return w.enqueue(flush.NewUnit(b.Bytes()))
}

func (w *Writer) finishTable() error {
	t := w.current
	if t == nil {
		return nil
	}
	w.current = nil
	if t.Rows() == 0 {
		// table must have at least one row
		if _, err := t.Row(0); err != nil {
			return err
		}
	}
	if err := w.beginTable(t); err != nil {
		return err
	}
	u := flush.RenderRows(w.util, t.DrainAll())
	var b bytes.Buffer
	t.AppendEnd(&b)
	if err := w.enqueue(u); err != nil {
		return err
	}
	if err := w.enqueue(flush.NewUnit(b.Bytes())); err != nil {
		return err
	}
	w.log.Debug("Table finished", zap.String("name", t.Name()), zap.Int("rows", t.Rows()), zap.Int("cells", t.Cells()))
	return nil
}

// ensurePrelude freezes styles and emits styles part and beginning of
// content part. Composites of default cell style with default data styles
// are interned first so typed cells keep working after that.
func (w *Writer) ensurePrelude() error {
	if w.prelude {
		return nil
	}
	w.prelude = true

	for _, ds := range w.styles.Data.All() {
		if _, err := w.reg.InternCompositeCellStyle(w.styles.Defaults.Cell, ds); err != nil {
			return fmt.Errorf("unable to prepare default cell styles: %w", err)
		}
	}
	w.reg.Freeze()
	if err := w.reg.Check(); err != nil {
		return fmt.Errorf("inconsistent styles: %w", err)
	}
	if ce := w.log.Check(zap.DebugLevel, "Styles frozen"); ce != nil {
		ce.Write(zap.String("registry", w.reg.Dump()))
	}

	if err := w.enqueue(flush.NewPartUnit("styles.xml", false, w.stylesPart())); err != nil {
		return err
	}
	return w.enqueue(flush.NewPartUnit("content.xml", false, w.contentPrelude()))
}

// Close finishes document and waits until it is written. When the document
// was created by Create, the file is closed too.
func (w *Writer) Close() (err error) {
	if w.closed {
		return nil
	}
	w.closed = true

	if err = w.finish(); err != nil {
		// stop consumer, package is incomplete anyway
		w.cancel()
	}
	werr := w.group.Wait()
	w.cancel()
	switch {
	case werr == nil:
	case err != nil && (errors.Is(err, werr) || errors.Is(werr, context.Canceled)):
	default:
		err = multierr.Append(err, werr)
	}
	w.written = w.pipe.Written()

	if w.file != nil {
		err = multierr.Append(err, w.closeFile(err == nil))
	}
	if err == nil {
		w.log.Debug("Document finished", zap.Int("tables", w.tables.Len()), zap.Int64("bytes", w.written))
	}
	return err
}

func (w *Writer) finish() error {
	if err := w.finishTable(); err != nil {
		return err
	}
	if err := w.ensurePrelude(); err != nil {
		return err
	}
	if err := w.enqueue(flush.NewUnit(w.contentPostlude())); err != nil {
		return err
	}

	meta, err := w.metaPart()
	if err != nil {
		return err
	}
	settings, err := w.settingsPart()
	if err != nil {
		return err
	}
	manifest, err := manifestPart()
	if err != nil {
		return err
	}
	for _, u := range []*flush.Unit{
		flush.NewPartUnit("meta.xml", false, meta),
		flush.NewPartUnit("settings.xml", false, settings),
		flush.NewPartUnit("META-INF/manifest.xml", false, manifest),
		flush.Terminal(),
	} {
		if err := w.enqueue(u); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) closeFile(ok bool) (err error) {
	name := w.file.Name()
	if err = w.file.Close(); err != nil {
		err = fmt.Errorf("unable to close output file: %w", err)
	}
	if !w.fixZip {
		return err
	}
	defer func() {
		err = multierr.Append(err, os.Remove(name))
	}()
	if !ok || err != nil {
		return err
	}
	if err := archive.StripDataDescriptors(name, w.target); err != nil {
		return fmt.Errorf("unable to fix output archive: %w", err)
	}
	return nil
}

// Written returns number of uncompressed bytes written into the package, it
// is known after Close.
func (w *Writer) Written() int64 {
	return w.written
}
