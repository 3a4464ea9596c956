// Package favorites keeps the user's favorite recipes in a storage slot and
// notifies subscribed views whenever the collection changes.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"recipefinder/mealdb"
	"recipefinder/storage"
)

// Listener is called after a change notification. It carries no payload;
// listeners re-read the store.
type Listener func(ctx context.Context)

type subscription struct {
	fn Listener
}

// Store is the persisted favorites collection. Construct one per slot and
// share it between every view that needs it.
type Store struct {
	slot storage.Slot

	// serializes read-modify-write cycles within this process
	mu sync.Mutex

	lmu       sync.Mutex
	listeners []*subscription
}

func NewStore(slot storage.Slot) *Store {
	return &Store{slot: slot}
}

// Read returns the favorites in insertion order. A missing or unreadable
// slot reads as an empty collection.
func (s *Store) Read(ctx context.Context) []mealdb.Recipe {
	b, err := s.slot.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "FAVORITES: failed to load slot, using empty list", "error", err)
		}
		return []mealdb.Recipe{}
	}

	var recipes []mealdb.Recipe
	if err := json.Unmarshal(b, &recipes); err != nil {
		slog.DebugContext(ctx, "FAVORITES: malformed slot, using empty list", "error", err)
		return []mealdb.Recipe{}
	}
	if recipes == nil {
		return []mealdb.Recipe{}
	}
	return recipes
}

// Write replaces the stored collection. Last write wins.
func (s *Store) Write(ctx context.Context, recipes []mealdb.Recipe) error {
	if recipes == nil {
		recipes = []mealdb.Recipe{}
	}
	b, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.slot.Save(ctx, b); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

// Update reads the collection, applies fn and writes the result back. The
// cycle is atomic only with respect to other Updates on this Store.
func (s *Store) Update(ctx context.Context, fn func([]mealdb.Recipe) []mealdb.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.Read(ctx))
	next = lo.UniqBy(next, func(r mealdb.Recipe) string { return r.ID })
	return s.Write(ctx, next)
}

// Contains reports whether a recipe with id is stored.
func (s *Store) Contains(ctx context.Context, id string) bool {
	return lo.ContainsBy(s.Read(ctx), func(r mealdb.Recipe) bool { return r.ID == id })
}

// Subscribe registers fn for change notifications. The returned function
// unsubscribes and may be called more than once.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscription{fn: fn}

	s.lmu.Lock()
	s.listeners = append(s.listeners, sub)
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			defer s.lmu.Unlock()
			s.listeners = lo.Without(s.listeners, sub)
		})
	}
}

// Notify calls every current listener in subscription order.
func (s *Store) Notify(ctx context.Context) {
	s.lmu.Lock()
	subs := make([]*subscription, len(s.listeners))
	copy(subs, s.listeners)
	s.lmu.Unlock()

	for _, sub := range subs {
		sub.fn(ctx)
	}
}

func (s *Store) raw(ctx context.Context) ([]byte, error) {
	return s.slot.Load(ctx)
}
