package app

import (
	"log/slog"

	"github.com/pthm-cable/galaxy/scene"
	"github.com/pthm-cable/galaxy/telemetry"
)

// onRegenerate runs after every successful regeneration, while the manager
// still holds its lock. It must not call back into the manager.
func (a *App) onRegenerate(ev scene.Event) {
	a.last = ev
	a.regenerated++

	stats := telemetry.Summarize(ev.Cloud, ev.Duration)
	a.logger.Debug("galaxy stats", "stats", stats, "released_previous", ev.Released)

	if err := a.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
}
