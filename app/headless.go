package app

import (
	"context"
	"fmt"
)

// RunHeadless performs n regenerations with the committed parameters and
// stops early if ctx is cancelled. Start must not have been called.
func (a *App) RunHeadless(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	p := a.editor.Committed()
	for i := 0; i < n; i++ {
		if err := a.Regenerate(ctx, p); err != nil {
			return fmt.Errorf("regeneration %d of %d: %w", i+1, n, err)
		}
	}

	a.logger.Info("headless run complete",
		"regenerations", a.regenerated,
		"generation", a.manager.Generation(),
		"last_duration", a.last.Duration,
	)
	return nil
}

// Regenerations returns how many regenerations have succeeded.
func (a *App) Regenerations() int {
	return a.regenerated
}
