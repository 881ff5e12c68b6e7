// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"odsw/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place. It is created
// before command line is parsed and filled by subcommands.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// convert subcommand flags
	NoDirs    bool
	Overwrite bool
	// CodePage decodes names of zip entries not flagged as UTF-8
	CodePage encoding.Encoding
	// InputCodePage overrides input.encoding for text sources
	InputCodePage encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

// ContextWithEnv returns ctx carrying fresh LocalEnv.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

// EnvFromContext panics when ctx was not prepared by ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey{}).(*LocalEnv)
	if !ok {
		panic("localenv not found in context")
	}
	return env
}

// Uptime returns time passed since environment was created.
func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends output of standard library logger to Log at info
// level. Noop until Log is set.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log != nil {
		e.restoreStdLog = zap.RedirectStdLog(e.Log)
	}
}

// RestoreStdLog flushes Log and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
