package moon

import (
	"runtime"

	"github.com/Relsola/moon/parser"
	"github.com/Relsola/moon/transformer"
	"github.com/rs/zerolog"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	filename    string
	logger      zerolog.Logger
	maxDepth    int
	workers     int
	transformer transformer.Transformer
}

func collectOptions(opts ...Option) *options {
	o := &options{
		logger:      zerolog.Nop(),
		maxDepth:    parser.DefaultMaxDepth,
		workers:     runtime.GOMAXPROCS(0),
		transformer: transformer.Default,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts(source string) []parser.Option {
	opts := []parser.Option{
		parser.WithSource(source),
		parser.WithMaxDepth(o.maxDepth),
	}
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	return opts
}

// WithFilename sets the filename for the source code being compiled.
// This is used in error positions.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets the logger that receives per-stage debug events.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth limits how deeply call expressions may nest.
// Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithWorkers bounds the number of sources CompileAll compiles at once.
// Values below one are ignored; the default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTransformer replaces the AST transformation stage.
func WithTransformer(t transformer.Transformer) Option {
	return func(o *options) {
		if t != nil {
			o.transformer = t
		}
	}
}
