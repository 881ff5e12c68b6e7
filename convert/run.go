// Package convert turns delimited text files, zip archives of them and SQLite
// databases into spreadsheet documents.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"zombiezen.com/go/sqlite"

	"odsw/archive"
	"odsw/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	env.CodePage = lookupCodePage(cmd.String("force-zip-cp"), "Forcefully converting all non UTF-8 file names in archives", log)
	env.InputCodePage = lookupCodePage(cmd.String("encoding"), "Forcefully decoding all text input", log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

func lookupCodePage(cp, msg string, log *zap.Logger) encoding.Encoding {
	if len(cp) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug(msg, zap.String("charset", n))
	return enc
}

// process handles the core conversion logic independently of CLI framework. It
// determines the input type (directory, archive, database or single file) and
// processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		kind, err := detectFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		switch {
		case kind == kindArchive:
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
		case kind == kindDatabase && len(tail) == 0:
			if err := processDatabase(ctx, head, filepath.Base(head), dst, log); err != nil {
				return fmt.Errorf("unable to process database: %w", err)
			}
		case kind == kindText && len(tail) == 0:
			if err := processFile(ctx, head, filepath.Base(head), dst, log); err != nil {
				return fmt.Errorf("unable to process file: %w", err)
			}
		default:
			return fmt.Errorf("input was not recognized as delimited text, zip archive or SQLite database (%s)", head)
		}
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree and converts every recognized file, in
// natural order of paths. Failures of individual files are logged.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortStableFunc(paths, naturalCompare)

	count := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind, err := detectFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		switch kind {
		case kindArchive:
			err = processArchive(ctx, path, "", filepath.Dir(rel), dst, log)
		case kindDatabase:
			err = processDatabase(ctx, path, rel, dst, log)
		case kindText:
			err = processFile(ctx, path, rel, dst, log)
		default:
			log.Debug("Skipping file, not recognized as source", zap.String("file", path))
			continue
		}
		count++
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return nil
}

// keepFailedSource puts copy of the source which could not be converted into
// debug report.
func keepFailedSource(env *state.LocalEnv, path string, err error, log *zap.Logger) {
	if err == nil || env.Rpt == nil {
		return
	}
	if err := env.Rpt.StoreCopy("failed/"+filepath.Base(path), path); err != nil {
		log.Warn("Unable to keep failed source in report", zap.String("file", path), zap.Error(err))
	}
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}

// processFile converts single delimited text file. "src" is part of the
// source path (always including file name) relative to the original path.
func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	defer func() { keepFailedSource(env, path, err, log) }()

	return convertSources(ctx, src, dst, kindText, log, func(wb *workbook) error {
		return wb.addSheet(ctx, fileSheetName(src), env.Cfg.Input.Header, func(fn recordFunc) error {
			return readCSV(ctx, f, src, &env.Cfg.Input, env.InputCodePage, fn)
		})
	})
}

// processArchive converts delimited text files inside archive found under
// "pathIn" into a single document, one sheet per file in natural order.
// "pathOut" is directory of the archive relative to the processed location.
func processArchive(ctx context.Context, file, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	name := filepath.Base(file)
	if pathIn != "" {
		name = path.Base(pathIn)
	}
	match := func(entry string) bool {
		return pathIn == "" || entry == pathIn || strings.HasPrefix(entry, strings.TrimSuffix(pathIn, "/")+"/")
	}

	var wb *workbook
	defer func() {
		if wb != nil {
			err = multierr.Append(err, wb.close(err == nil))
		}
		keepFailedSource(env, file, err, log)
	}()

	err = archive.Walk(file, match, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		text, err := isTextInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !text {
			log.Debug("Skipping file, not recognized as delimited text", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		if wb == nil {
			if wb, err = newWorkbook(ctx, filepath.Join(pathOut, name), dst, kindArchive, log); err != nil {
				return err
			}
		}

		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", f.FileHeader.Name, err)
		}
		defer r.Close()

		cp := env.CodePage

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		return wb.addSheet(ctx, fileSheetName(pathInArchive), env.Cfg.Input.Header, func(fn recordFunc) error {
			return readCSV(ctx, r, pathInArchive, &env.Cfg.Input, env.InputCodePage, fn)
		})
	})
	if err == nil && wb == nil {
		if pathIn != "" {
			return fmt.Errorf("nothing to convert in archive (%s) under (%s)", file, pathIn)
		}
		log.Debug("Nothing to process", zap.String("archive", file))
	}
	return err
}

// processDatabase converts every table of SQLite database into a sheet.
func processDatabase(ctx context.Context, path, src, dst string, log *zap.Logger) (err error) {
	defer func() { keepFailedSource(state.EnvFromContext(ctx), path, err, log) }()

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
	}()
	conn.SetInterrupt(ctx.Done())

	tables, err := listTables(conn)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		log.Debug("Nothing to process", zap.String("database", path))
		return nil
	}

	return convertSources(ctx, src, dst, kindDatabase, log, func(wb *workbook) error {
		for _, name := range tables {
			err := wb.addSheet(ctx, name, true, func(fn recordFunc) error {
				return readTable(conn, name, fn)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// convertSources creates output document and lets fill add sheets to it.
func convertSources(ctx context.Context, src, dst string, kind sourceKind, log *zap.Logger, fill func(*workbook) error) (rerr error) {
	wb, err := newWorkbook(ctx, src, dst, kind, log)
	if err != nil {
		return err
	}
	defer func() {
		// NOTE: do not let a single broken source stop processing of
		// the rest of the directory.
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			rerr = multierr.Append(fmt.Errorf("conversion panic: %v", r), wb.close(false))
			return
		}
		rerr = multierr.Append(rerr, wb.close(rerr == nil))
	}()
	return fill(wb)
}
