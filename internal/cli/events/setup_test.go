package events

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/clock"
	"github.com/julianstephens/dayplan/internal/state"
	"github.com/julianstephens/dayplan/internal/storage"
)

func init() {
	color.NoColor = true
}

// setupTestContext builds a context on an in-memory store with the clock
// fixed at 2024-03-10 08:00.
func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	provider := storage.NewMemoryStore()
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to init provider: %v", err)
	}
	c, err := clock.NewFixed("2024-03-10", 8*60)
	if err != nil {
		t.Fatal(err)
	}
	store := state.New(provider, c)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return &cli.Context{Store: store, Provider: provider, ConfigDir: t.TempDir(), Out: &out}, &out
}
