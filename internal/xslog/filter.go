package xslog

import (
	"context"
	"log/slog"
	"slices"
)

var _ slog.Handler = (*FilterHandler)(nil)

// FilterFunc reports whether a record should be logged.
type FilterFunc func(ctx context.Context, record slog.Record) bool

func NewFilterHandler(handler slog.Handler, filters ...FilterFunc) *FilterHandler {
	return &FilterHandler{handler: handler, filters: filters}
}

type FilterHandler struct {
	handler slog.Handler
	filters []FilterFunc
}

func (f *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.handler.Enabled(ctx, level)
}

func (f *FilterHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, filter := range f.filters {
		if !filter(ctx, record) {
			return nil
		}
	}
	return f.handler.Handle(ctx, record)
}

func (f *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewFilterHandler(f.handler.WithAttrs(attrs), f.filters...)
}

func (f *FilterHandler) WithGroup(name string) slog.Handler {
	return NewFilterHandler(f.handler.WithGroup(name), f.filters...)
}

// IgnorePath drops records carrying a "path" attribute matching one of paths.
// Health checks hit the server a few times a minute, no need to log them all.
func IgnorePath(paths ...string) FilterFunc {
	return func(_ context.Context, record slog.Record) bool {
		var path string
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "path" {
				path = attr.Value.String()
				return false
			}
			return true
		})
		return !slices.Contains(paths, path)
	}
}
