package goschematron

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"
)

// ErrorListener receives diagnostics raised while the validation program
// executes. A custom listener replaces the default logging listener for all
// invocations on the configuring instance.
type ErrorListener interface {
	Warning(msg string, err error)
	Error(msg string, err error)
}

// LoggingErrorListener returns the default listener, backed by a structured
// logger. A nil logger falls back to slog.Default().
func LoggingErrorListener(log *slog.Logger) ErrorListener {
	return &loggingErrorListener{log: log}
}

type loggingErrorListener struct {
	log *slog.Logger
}

func (l *loggingErrorListener) logger() *slog.Logger {
	if l.log != nil {
		return l.log
	}
	return slog.Default()
}

func (l *loggingErrorListener) Warning(msg string, err error) {
	l.logger().Warn("schematron engine", "msg", msg, "err", err)
}

func (l *loggingErrorListener) Error(msg string, err error) {
	l.logger().Error("schematron engine", "msg", msg, "err", err)
}

// DocumentResolver loads secondary documents referenced during evaluation,
// e.g. through document('href') heads in rule contexts.
type DocumentResolver interface {
	Resolve(href string) (*xmlquery.Node, error)
}

// FileDocumentResolver resolves hrefs against a base directory on the local
// filesystem.
func FileDocumentResolver(baseDir string) DocumentResolver {
	return &fileDocumentResolver{base: baseDir}
}

type fileDocumentResolver struct {
	base string
}

func (r *fileDocumentResolver) Resolve(href string) (*xmlquery.Node, error) {
	f, err := os.Open(filepath.Join(r.base, href))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xmlquery.Parse(f)
}
