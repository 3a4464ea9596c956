package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"recipefinder/mealdb"
)

// State is a hook's view of one recipe's favorite status.
type State int

const (
	Unknown State = iota
	Favorite
	NotFavorite
)

func (s State) String() string {
	switch s {
	case Favorite:
		return "favorite"
	case NotFavorite:
		return "not-favorite"
	default:
		return "unknown"
	}
}

func stateOf(fav bool) State {
	if fav {
		return Favorite
	}
	return NotFavorite
}

// ErrIDMismatch is returned by Toggle when the recipe is not the one the hook is mounted on.
var ErrIDMismatch = errors.New("recipe id does not match mounted hook")

// Hook is a per-recipe view over a Store. It derives whether the recipe is
// a favorite, toggles it, and follows changes made through other hooks.
type Hook struct {
	store *Store

	mu          sync.Mutex
	id          string
	state       State
	unsubscribe func()
	onChange    func(State)
}

func NewHook(store *Store) *Hook {
	return &Hook{store: store}
}

// OnChange sets a callback run whenever the derived state changes.
func (h *Hook) OnChange(fn func(State)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = fn
}

// Mount associates the hook with id, reads the store and starts following
// change notifications.
func (h *Hook) Mount(ctx context.Context, id string) {
	h.mu.Lock()
	h.id = id
	if h.unsubscribe == nil {
		h.unsubscribe = h.store.Subscribe(h.refresh)
	}
	h.mu.Unlock()

	h.refresh(ctx)
}

// Unmount stops following notifications. The last derived state is kept.
func (h *Hook) Unmount() {
	h.mu.Lock()
	unsubscribe := h.unsubscribe
	h.unsubscribe = nil
	h.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (h *Hook) ID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

func (h *Hook) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Hook) IsFavorite() bool {
	return h.State() == Favorite
}

// Toggle flips the favorite status of recipe, persists it and broadcasts
// the change to every subscribed view.
func (h *Hook) Toggle(ctx context.Context, recipe mealdb.Recipe) error {
	h.mu.Lock()
	if h.id == "" {
		h.id = recipe.ID
	}
	if recipe.ID != h.id {
		h.mu.Unlock()
		return fmt.Errorf("toggle %s on hook for %s: %w", recipe.ID, h.id, ErrIDMismatch)
	}
	id := h.id
	current := h.state
	h.mu.Unlock()

	var next State
	err := h.store.Update(ctx, func(favs []mealdb.Recipe) []mealdb.Recipe {
		present := lo.ContainsBy(favs, func(r mealdb.Recipe) bool { return r.ID == id })
		wasFavorite := current == Favorite || (current == Unknown && present)

		if wasFavorite {
			next = NotFavorite
			return lo.Reject(favs, func(r mealdb.Recipe, _ int) bool { return r.ID == id })
		}
		next = Favorite
		if present {
			return favs
		}
		return append(favs, recipe)
	})
	if err != nil {
		return fmt.Errorf("toggle favorite %s: %w", id, err)
	}

	slog.InfoContext(ctx, "FAVORITES: toggled", "id", id, "state", next.String())
	h.set(next)
	h.store.Notify(ctx)
	return nil
}

func (h *Hook) refresh(ctx context.Context) {
	id := h.ID()
	if id == "" {
		return
	}
	h.set(stateOf(h.store.Contains(ctx, id)))
}

func (h *Hook) set(next State) {
	h.mu.Lock()
	changed := h.state != next
	h.state = next
	fn := h.onChange
	h.mu.Unlock()

	if changed && fn != nil {
		fn(next)
	}
}
