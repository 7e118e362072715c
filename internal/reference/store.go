// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reference

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// =============================================================================
// STORE
// =============================================================================

// Store holds the current reference data. Get returns nil until the first
// successful load.
type Store struct {
	data   atomic.Pointer[Data]
	logger *zap.Logger

	mu        sync.Mutex
	listeners []func(*Data)
}

// NewStore creates an empty store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger.Named("reference")}
}

// Get returns the current data, or nil while still loading.
func (s *Store) Get() *Data {
	return s.data.Load()
}

// Ready reports whether data has been loaded.
func (s *Store) Ready() bool {
	return s.data.Load() != nil
}

// Set replaces the current data and notifies listeners.
func (s *Store) Set(d *Data) {
	if d == nil {
		return
	}
	s.data.Store(d)

	s.mu.Lock()
	listeners := append([]func(*Data){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(d)
	}
}

// OnChange registers fn to run after every successful Set.
func (s *Store) OnChange(fn func(*Data)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Load runs the loader and stores its result. On failure the previous data,
// if any, is kept.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	d, err := loader.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load reference data", zap.Error(err))
		return err
	}
	s.Set(d)
	s.logger.Info("reference data loaded",
		zap.String("company", d.Company.Name),
		zap.Int("products", len(d.Catalog.Products)),
	)
	return nil
}

// LoadAsync loads in the background. The returned channel receives the
// load result and is then closed.
func (s *Store) LoadAsync(ctx context.Context, loader Loader) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Load(ctx, loader)
	}()
	return done
}
