//go:build integration

package containers

import (
	"context"
	"sync"
	"testing"
)

// Manager hands out containers shared by every suite of a test binary.
type Manager struct {
	mu    sync.Mutex
	redis *RedisContainer
}

var (
	managerOnce sync.Once
	manager     *Manager
)

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

// GetRedis starts Redis on first use and returns the shared container.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redis == nil {
		rc, err := startRedis(context.Background())
		if err != nil {
			t.Fatalf("redis container: %v", err)
		}
		m.redis = rc
	}
	return m.redis
}
