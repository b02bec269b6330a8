package repository

import (
	"context"
	"sync"
)

type memoryDirectory struct {
	mu    sync.RWMutex
	users map[string]string
}

// NewMemoryDirectory creates an in-memory Directory for single-process deployments
func NewMemoryDirectory() Directory {
	return &memoryDirectory{users: make(map[string]string)}
}

func (d *memoryDirectory) Upsert(_ context.Context, phone, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[phone] = name
	return nil
}

func (d *memoryDirectory) Get(_ context.Context, phone string) (string, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.users[phone]
	return name, ok, nil
}
