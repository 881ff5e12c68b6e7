package ods

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"odsw/config"
	"odsw/container"
	"odsw/style"
	"odsw/table"
)

func testConfig() *config.DocumentConfig {
	return &config.DocumentConfig{
		FlushRows:        2,
		CompressionLevel: -1,
		Locale:           "en-US",
		Title:            "Quarterly <report>",
		Creator:          "tester",
	}
}

type pkg struct {
	names []string
	parts map[string]string
	first *zip.File
}

func readPackage(t *testing.T, data []byte) pkg {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unable to read package: %v", err)
	}
	p := pkg{parts: make(map[string]string), first: zr.File[0]}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		p.names = append(p.names, f.Name)
		p.parts[f.Name] = string(b)
	}
	return p
}

func fill(t *testing.T, tbl *table.Table, rows int) {
	t.Helper()
	for i := range rows {
		r, err := tbl.NextRow()
		if err != nil {
			t.Fatalf("NextRow(%d): %v", i, err)
		}
		c0, err := r.Cell(0)
		if err != nil {
			t.Fatal(err)
		}
		c1, err := r.Cell(1)
		if err != nil {
			t.Fatal(err)
		}
		if err := c0.SetString("row"); err != nil {
			t.Fatal(err)
		}
		if err := c1.SetFloat(float64(i) + 0.5); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWriter_Document(t *testing.T) {
	var out bytes.Buffer
	w, err := NewWriter(context.Background(), &out, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	first, err := w.AddTable("First")
	if err != nil {
		t.Fatal(err)
	}
	first.SetFrozen(1, 0)
	first.AddAutoFilter(table.Range{LastRow: 5, LastCol: 1})
	fill(t, first, 6)

	second, err := w.AddTable("It's second")
	if err != nil {
		t.Fatal(err)
	}
	fill(t, second, 3)
	if err := w.SetActiveTable("It's second"); err != nil {
		t.Fatal(err)
	}

	// first table is finished and flushed
	if _, err := first.Row(5); !errors.Is(err, table.ErrRowFlushed) {
		t.Errorf("row of finished table = %v, want ErrRowFlushed", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if w.Written() == 0 {
		t.Error("Written() = 0")
	}

	p := readPackage(t, out.Bytes())
	wantNames := []string{"mimetype", "styles.xml", "content.xml", "meta.xml", "settings.xml", "META-INF/manifest.xml"}
	if !slices.Equal(p.names, wantNames) {
		t.Errorf("parts = %v, want %v", p.names, wantNames)
	}
	if p.first.Method != zip.Store || p.parts["mimetype"] != MimeType {
		t.Errorf("mimetype entry method %d content %q", p.first.Method, p.parts["mimetype"])
	}

	content := p.parts["content.xml"]
	for _, want := range []string{
		`xmlns:calcext=`,
		`<style:style style:name="Default-_-float-data" style:family="table-cell" style:parent-style-name="Default" style:data-style-name="float-data"/>`,
		`<table:table table:name="First" table:style-name="ta1">`,
		`<table:table table:name="It&apos;s second" table:style-name="ta1">`,
		`<table:table-cell table:style-name="Default-_-float-data" office:value-type="float" calcext:value-type="float" office:value="5.5"/>`,
		`<table:database-range table:name="__Anonymous_Sheet_DB__0" table:target-range-address="&apos;First&apos;.A1:&apos;First&apos;.B6" table:display-filter-buttons="true"/>`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("content.xml does not contain %s", want)
		}
	}
	if !strings.HasSuffix(content, "</office:spreadsheet></office:body></office:document-content>") {
		t.Error("content.xml is not closed")
	}
	if strings.Count(content, "<table:table-row") != 9 {
		t.Errorf("rows = %d, want 9", strings.Count(content, "<table:table-row"))
	}

	styles := p.parts["styles.xml"]
	for _, want := range []string{
		`<style:style style:name="Default" style:family="table-cell"`,
		`<number:number-style style:name="float-data"`,
		`<style:page-layout style:name="Mpm1">`,
		`<style:master-page style:name="DefaultMasterPage" style:page-layout-name="Mpm1">`,
	} {
		if !strings.Contains(styles, want) {
			t.Errorf("styles.xml does not contain %s", want)
		}
	}

	meta := p.parts["meta.xml"]
	for _, want := range []string{
		`<dc:title>Quarterly &lt;report&gt;</dc:title>`,
		`<dc:creator>tester</dc:creator>`,
		`<dc:language>en-US</dc:language>`,
		`meta:table-count="2" meta:cell-count="18"`,
		w.ID().String(),
	} {
		if !strings.Contains(meta, want) {
			t.Errorf("meta.xml does not contain %s:\n%s", want, meta)
		}
	}

	settings := p.parts["settings.xml"]
	for _, want := range []string{
		`<config:config-item-map-entry config:name="First">`,
		`<config:config-item config:name="VerticalSplitPosition" config:type="int">1</config:config-item>`,
		`<config:config-item config:name="ActiveTable" config:type="string">It`,
	} {
		if !strings.Contains(settings, want) {
			t.Errorf("settings.xml does not contain %s:\n%s", want, settings)
		}
	}

	manifest := p.parts["META-INF/manifest.xml"]
	for _, name := range manifestParts {
		if !strings.Contains(manifest, `manifest:full-path="`+name+`"`) {
			t.Errorf("manifest misses %s", name)
		}
	}
}

func TestWriter_StylesFrozenAfterFirstFlush(t *testing.T) {
	w, err := NewWriter(context.Background(), io.Discard, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	early := style.NewCellStyle("Early", style.CellProperties{Wrap: true})
	if err := w.RegisterStyle(early); err != nil {
		t.Fatalf("RegisterStyle() before flush = %v", err)
	}
	percent := style.NewNumberStyle("pct0", style.NumberPercentage, style.NumberFormat{})
	if err := w.AddDataStyle(percent); err != nil {
		t.Fatal(err)
	}
	earlyPct, err := w.InternCellStyle(early, percent)
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := w.AddTable("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	fill(t, tbl, 3) // flushes first rows, registry is frozen now

	late := style.NewCellStyle("Late", style.CellProperties{})
	if err := w.RegisterStyle(late); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("RegisterStyle() after flush = %v, want ErrFrozen", err)
	}
	if _, err := w.InternCellStyle(early, w.DataStyles().Date); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("new composite after flush = %v, want ErrFrozen", err)
	}
	if got, err := w.InternCellStyle(early, percent); err != nil || got != earlyPct {
		t.Errorf("cached composite after flush = %v, %v", got, err)
	}
	if err := w.RegisterStyle(early); err != nil {
		t.Errorf("already registered style after flush = %v", err)
	}

	// default typed cells keep working
	r, err := tbl.NextRow()
	if err != nil {
		t.Fatal(err)
	}
	c, _ := r.Cell(0)
	if err := c.SetDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("SetDate() after freeze = %v", err)
	}
	if err := c.SetStyle(late); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("unregistered style after freeze = %v", err)
	}
}

func TestWriter_Tables(t *testing.T) {
	w, err := NewWriter(context.Background(), io.Discard, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "  ", "a/b", "x[1]", "what?"} {
		if _, err := w.AddTable(name); !errors.Is(err, ErrTableName) {
			t.Errorf("AddTable(%q) = %v, want ErrTableName", name, err)
		}
	}
	if _, err := w.AddTable("A"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddTable("A"); !errors.Is(err, container.ErrDuplicateKey) {
		t.Errorf("duplicate AddTable = %v", err)
	}
	if _, err := w.AddTable("B"); err != nil {
		t.Fatal(err)
	}
	if got := w.TableNames(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("TableNames() = %v", got)
	}
	if _, ok := w.Table("B"); !ok {
		t.Error("Table(B) not found")
	}
	if err := w.SetActiveTable("C"); !errors.Is(err, ErrNoTable) {
		t.Errorf("SetActiveTable(C) = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddTable("C"); !errors.Is(err, ErrClosed) {
		t.Errorf("AddTable after Close = %v", err)
	}
	if err := w.RegisterStyle(style.NewCellStyle("x", style.CellProperties{})); !errors.Is(err, ErrClosed) {
		t.Errorf("RegisterStyle after Close = %v", err)
	}
}

func TestWriter_EmptyDocument(t *testing.T) {
	var out bytes.Buffer
	w, err := NewWriter(context.Background(), &out, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	p := readPackage(t, out.Bytes())
	if !strings.Contains(p.parts["content.xml"], "<office:spreadsheet></office:spreadsheet>") {
		t.Errorf("unexpected content: %s", p.parts["content.xml"])
	}
	if !strings.Contains(p.parts["meta.xml"], `meta:table-count="0"`) {
		t.Errorf("unexpected meta: %s", p.parts["meta.xml"])
	}
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestWriter_OutputError(t *testing.T) {
	cfg := testConfig()
	cfg.CompressionLevel = 0
	w, err := NewWriter(context.Background(), &failingWriter{after: 1}, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := w.AddTable("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	for range 100 {
		if _, err := tbl.NextRow(); err != nil {
			break
		}
	}
	err = w.Close()
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Close() = %v, want disk full", err)
	}
}

func TestWriter_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w, err := NewWriter(ctx, io.Discard, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := w.Close(); !errors.Is(err, context.Canceled) {
		t.Errorf("Close() after cancel = %v", err)
	}
}

func TestCreate(t *testing.T) {
	for _, fix := range []bool{false, true} {
		t.Run(map[bool]string{false: "plain", true: "fix zip"}[fix], func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "out.ods")
			cfg := testConfig()
			cfg.FixZip = fix

			w, err := Create(context.Background(), path, cfg, nil)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			tbl, err := w.AddTable("Sheet1")
			if err != nil {
				t.Fatal(err)
			}
			fill(t, tbl, 4)
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			p := readPackage(t, data)
			if p.names[0] != "mimetype" || len(p.names) != 6 {
				t.Errorf("parts = %v", p.names)
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("temporary files left: %v", entries)
			}
			if fix {
				zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
				if err != nil {
					t.Fatal(err)
				}
				for _, f := range zr.File {
					if f.Flags&0x8 != 0 {
						t.Errorf("%s has data descriptor", f.Name)
					}
				}
			}
		})
	}
}
