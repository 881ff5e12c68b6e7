package config

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"go.uber.org/multierr"

	"odsw/archive"
	"odsw/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either in-memory data or a file read when report is closed.
type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
	temp     bool // actual is a copy owned by report
}

func (e entry) content() ([]byte, error) {
	if len(e.data) > 0 {
		return e.data, nil
	}
	return os.ReadFile(e.actual)
}

// Report collects logs, configuration, conversion results and failed sources
// into single zip archive for troubleshooting. Not safe for concurrent use.
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close writes the archive and removes temporary copies. Nil report is
// allowed.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
		for _, e := range r.entries {
			if e.temp {
				err = multierr.Append(err, os.RemoveAll(filepath.Dir(e.actual)))
			}
		}
	}()
	return r.finalize()
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers path to be put into report under name when report is
// closed. Storing different path under the same name is a programming error.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}
	actual, err := filepath.Abs(path)
	if err != nil {
		actual = path
	}
	r.entries[name] = entry{original: path, actual: actual}
}

// StoreData puts data into report under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// StoreCopy snapshots file at path. Repeated names get timestamp suffix.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("unable to store copy of %s: not a regular file", path)
	}

	e := entry{stamp: time.Now(), original: path, temp: true}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}
	if e.actual, err = copyFile(filepath.Join(dir, filepath.Base(path)), path, info.ModTime()); err != nil {
		return multierr.Append(err, os.RemoveAll(dir))
	}
	r.entries[name] = e
	return nil
}

func copyFile(dst, src string, modTime time.Time) (_ string, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(out, in)
	if err = multierr.Append(err, out.Close()); err != nil {
		return "", err
	}
	return dst, os.Chtimes(dst, modTime, modTime)
}

// finalize writes MANIFEST followed by every stored item in name order,
// files which are gone by now are skipped.
func (r *Report) finalize() error {
	arc := archive.NewWriter(r.file, flate.DefaultCompression)

	names := slices.Sorted(maps.Keys(r.entries))
	if err := writeReportPart(arc, "MANIFEST", []byte(r.manifest(names))); err != nil {
		return err
	}
	for _, name := range names {
		data, err := r.entries[name].content()
		if err != nil {
			continue
		}
		if err := writeReportPart(arc, name, data); err != nil {
			return err
		}
	}
	return arc.FinalizeAndClose()
}

func writeReportPart(arc *archive.Writer, name string, data []byte) error {
	if err := arc.OpenPart(name, false); err != nil {
		return err
	}
	return arc.Write(data)
}

func (r *Report) manifest(names []string) string {
	now := time.Now()
	var sb strings.Builder
	for _, name := range names {
		e := r.entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), name, e.original, e.actual)
	}
	return sb.String()
}
