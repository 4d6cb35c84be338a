package project

import (
	"time"

	"go.uber.org/zap"

	"pagecraft/config"
)

type options struct {
	historyDepth int
	zoom         config.ZoomConfig
	log          *zap.Logger
	now          func() time.Time
}

// Option changes project behavior.
type Option func(*options)

func defaultOptions() options {
	return options{
		historyDepth: 50,
		zoom:         config.ZoomConfig{Min: 0.3, Max: 2.0, Step: 0.1},
		log:          zap.NewNop(),
		now:          time.Now,
	}
}

// WithEditorConfig applies history depth and zoom limits from configuration.
func WithEditorConfig(cfg *config.EditorConfig) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		if cfg.HistoryDepth > 0 {
			o.historyDepth = cfg.HistoryDepth
		}
		if cfg.Zoom.Max > cfg.Zoom.Min && cfg.Zoom.Min > 0 && cfg.Zoom.Step > 0 {
			o.zoom = cfg.Zoom
		}
	}
}

// WithHistoryDepth sets number of undo steps kept.
func WithHistoryDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.historyDepth = depth
		}
	}
}

// WithLogger sets logger for project events.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock replaces time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.Named("project")
	return o
}
