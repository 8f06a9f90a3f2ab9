package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging the event at debug
// level. Register it with [SetPipelineHooks], [SetCacheHooks] and
// [SetHTTPHooks] to trace a process without a metrics backend.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Register installs h for all event categories.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnParseStart(_ context.Context, name string) {
	h.Logger.Debug("parse.start", "molecule", name)
}

func (h *LogHooks) OnParseComplete(_ context.Context, name string, length int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("parse.failed", "molecule", name, "err", err)
		return
	}
	h.Logger.Debug("parse.done", "molecule", name, "length", length, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, name string, length, pairs int) {
	h.Logger.Debug("layout.start", "molecule", name, "length", length, "pairs", pairs)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, name string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout.failed", "molecule", name, "err", err)
		return
	}
	h.Logger.Debug("layout.done", "molecule", name, "took", d)
}

func (h *LogHooks) OnPseudoknotsRemoved(_ context.Context, name string, removed int) {
	h.Logger.Debug("layout.pseudoknots", "molecule", name, "removed", removed)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache.hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache.miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache.set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("http.request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("http.response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Debug("http.error", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
