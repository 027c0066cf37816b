package cli

import (
	"log/slog"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// progressReporter turns engine callbacks into log records.
type progressReporter struct {
	logger *slog.Logger
	total  int
	done   int
	ticks  int
}

func newProgressReporter(logger *slog.Logger) *progressReporter {
	return &progressReporter{logger: logger}
}

// hooks returns the engine callbacks bound to r.
func (r *progressReporter) hooks() types.Hooks {
	return types.Hooks{
		OnLog: func(message string) {
			r.logger.Info(message)
		},
		OnProgressTotal: func(total int) {
			r.total = total
			r.logger.Debug("progress started", "total", total)
		},
		OnProgressStep: func(delta int) {
			r.done += delta
		},
		OnTick: func() {
			r.ticks++
			r.logger.Debug("progress", "done", r.done, "total", r.total, "tick", r.ticks)
		},
	}
}
