package linter

import (
	"github.com/viant/afs"
	"github.com/viant/objguard/baseline"
	"github.com/viant/objguard/config"
	"go.uber.org/zap"
)

// Option configures a Linter
type Option func(*Linter)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(l *Linter) {
		l.logger = logger
	}
}

// WithFS sets the file system service used to walk and read sources
func WithFS(fs afs.Service) Option {
	return func(l *Linter) {
		l.fs = fs
	}
}

// WithConfig sets rule and exclusion settings
func WithConfig(cfg *config.Config) Option {
	return func(l *Linter) {
		l.config = cfg
	}
}

// WithBaseline suppresses findings accepted in store
func WithBaseline(store *baseline.Store) Option {
	return func(l *Linter) {
		l.baseline = store
	}
}

// WithSkipTests skips *.test.* and *.spec.* files
func WithSkipTests() Option {
	return func(l *Linter) {
		l.skipTests = true
	}
}
