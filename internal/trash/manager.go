// Package trash implements the remove and restore operations on top of the
// batch store.
package trash

import (
	"os"

	"github.com/babarot/rr/internal/batch"
	"github.com/babarot/rr/internal/core/atomic"
)

// Manager runs remove and restore against a single batch store
type Manager struct {
	store         *batch.Store
	getwd         func() (string, error)
	allowCrossDev bool
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithWorkingDir fixes the directory recorded as a batch's origin.
func WithWorkingDir(dir string) ManagerOption {
	return func(m *Manager) {
		m.getwd = func() (string, error) { return dir, nil }
	}
}

// WithCrossDevice toggles the copy-and-delete fallback for moves between
// filesystems.
func WithCrossDevice(allow bool) ManagerOption {
	return func(m *Manager) {
		m.allowCrossDev = allow
	}
}

// NewManager creates a new trash manager
func NewManager(store *batch.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:         store,
		getwd:         os.Getwd,
		allowCrossDev: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Item is one entry relocated by remove or restore
type Item struct {
	From  string
	To    string
	IsDir bool
}

func (m *Manager) move(src, dst string) error {
	return atomic.Move(src, dst, atomic.MoveOptions{
		AllowCrossDev: m.allowCrossDev,
	})
}
