package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/mealdb"
	"recipefinder/storage"
)

func TestWatchFollowsOtherProcess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared := storage.NewMemorySlot(nil)
	ours := NewStore(shared)
	theirs := NewStore(shared)

	h := NewHook(ours)
	h.Mount(ctx, "1")
	defer h.Unmount()

	changed := make(chan State, 4)
	h.OnChange(func(s State) { changed <- s })

	done := make(chan struct{})
	go func() {
		ours.Watch(ctx, 5*time.Millisecond)
		close(done)
	}()

	// give Watch time to take its baseline
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, theirs.Write(ctx, []mealdb.Recipe{recipe("1", "Apple Pie")}))

	select {
	case s := <-changed:
		assert.Equal(t, Favorite, s)
	case <-time.After(2 * time.Second):
		t.Fatal("hook did not observe the external write")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
