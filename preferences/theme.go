// Package preferences persists the dark/light theme choice.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"recipefinder/storage"
)

type Theme struct {
	slot storage.Slot
}

func NewTheme(slot storage.Slot) *Theme {
	return &Theme{slot: slot}
}

// DarkMode returns the saved preference, or false (light) when nothing
// usable has been saved.
func (t *Theme) DarkMode(ctx context.Context) bool {
	b, err := t.slot.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "PREFERENCES: failed to load theme, using light", "error", err)
		}
		return false
	}
	var dark bool
	if err := json.Unmarshal(b, &dark); err != nil {
		slog.DebugContext(ctx, "PREFERENCES: malformed theme, using light", "error", err)
		return false
	}
	return dark
}

func (t *Theme) SetDarkMode(ctx context.Context, dark bool) error {
	b, _ := json.Marshal(dark)
	if err := t.slot.Save(ctx, b); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips the preference and returns the new value.
func (t *Theme) Toggle(ctx context.Context) (bool, error) {
	next := !t.DarkMode(ctx)
	return next, t.SetDarkMode(ctx, next)
}
