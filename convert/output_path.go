package convert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"odsw/config"
	"odsw/state"
)

const outputExt = ".ods"

// buildOutputPath returns name of the document produced for src (relative
// source path) under dst. Name comes from output name template when one is
// configured and expands to something, otherwise from source file name.
func buildOutputPath(src, dst string, kind sourceKind, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)

	if tmpl := env.Cfg.Document.OutputNameTemplate; tmpl != "" {
		values := buildValues(config.OutputNameTemplateFieldName, src, kind, &env.Cfg.Document)
		name, err := expandTemplate(config.OutputNameTemplateFieldName, tmpl, values)
		if err != nil {
			env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		} else if name = strings.TrimSpace(name); name != "" {
			return assemblePathWithSubdirs(outDir, filepath.FromSlash(name), env)
		}
	}

	base := filepath.Base(src)
	return filepath.Join(outDir, cleanPathSegment(strings.TrimSuffix(base, filepath.Ext(base)), env)+outputExt)
}

// determineOutputDir keeps source directory structure unless it was disabled.
func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// assemblePathWithSubdirs places expanded template name, which may have
// subdirectories, under outDir. Every segment is cleaned, relative
// references are dropped.
func assemblePathWithSubdirs(outDir, name string, env *state.LocalEnv) string {
	segments := splitAndCleanPath(name)
	if len(segments) == 0 {
		return outDir
	}

	parts := []string{outDir}
	last := len(segments) - 1
	for _, s := range segments[:last] {
		if s == "." || s == ".." {
			continue
		}
		parts = append(parts, cleanPathSegment(s, env))
	}
	parts = append(parts, cleanPathSegment(strings.TrimSuffix(segments[last], outputExt), env)+outputExt)
	return filepath.Join(parts...)
}

func splitAndCleanPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == os.PathSeparator || r == '/'
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
