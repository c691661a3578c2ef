package tui

import (
	"context"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"
)

// StructureLister provides market-structure signals to the TUI.
type StructureLister interface {
	ListStructures(ctx context.Context) ([]domain.Structure, error)
}

// Services bundles the dependencies injected into the TUI.
type Services struct {
	Journal    journal.Store
	Structures StructureLister
	Location   *time.Location
	Username   string

	// ReadFile loads screenshot files; os.ReadFile when nil.
	ReadFile func(path string) ([]byte, error)
}
