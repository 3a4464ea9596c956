package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recipefinder/favorites"
	"recipefinder/mealdb"
)

const maxListedFavorites = 5

// FavoritesNotifier posts a summary of the favorites collection every time
// the store broadcasts a change. Bursts of changes collapse into one post.
type FavoritesNotifier struct {
	client  *Client
	channel string
	store   *favorites.Store
	pending chan struct{}
}

func NewFavoritesNotifier(client *Client, channel string, store *favorites.Store) *FavoritesNotifier {
	return &FavoritesNotifier{
		client:  client,
		channel: channel,
		store:   store,
		pending: make(chan struct{}, 1),
	}
}

// Run subscribes to the store and posts until ctx is done.
func (n *FavoritesNotifier) Run(ctx context.Context) {
	unsubscribe := n.store.Subscribe(func(context.Context) {
		select {
		case n.pending <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case <-n.pending:
			msg := FormatFavorites(n.store.Read(ctx))
			if err := n.client.PostMessage(ctx, n.channel, msg); err != nil {
				slog.Error("SLACK: Failed to post favorites update", "channel", n.channel, "error", err)
				continue
			}
			slog.Debug("SLACK: Posted favorites update", "channel", n.channel)
		}
	}
}

// FormatFavorites renders the message text for a favorites collection.
func FormatFavorites(saved []mealdb.Recipe) string {
	if len(saved) == 0 {
		return "Favorites updated: no saved recipes."
	}

	names := make([]string, 0, maxListedFavorites)
	for i, r := range saved {
		if i == maxListedFavorites {
			break
		}
		names = append(names, r.Name)
	}
	list := strings.Join(names, ", ")
	if extra := len(saved) - len(names); extra > 0 {
		list = fmt.Sprintf("%s and %d more", list, extra)
	}

	noun := "recipes"
	if len(saved) == 1 {
		noun = "recipe"
	}
	return fmt.Sprintf("Favorites updated: %d saved %s (%s).", len(saved), noun, list)
}
