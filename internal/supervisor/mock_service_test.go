// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService records how often the supervisor started it and can be told
// to fail its first few runs.
type mockService struct {
	name      string
	starts    atomic.Int32
	failFirst atomic.Int32
}

func newMockService(name string) *mockService {
	return &mockService{name: name}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	if m.failFirst.Load() > 0 {
		m.failFirst.Add(-1)
		return errors.New("mock failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}

func (m *mockService) StartCount() int {
	return int(m.starts.Load())
}
