package reservations

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

type memoryEntry struct {
	list      []*domain.Reservation
	expiresAt time.Time
}

// MemoryBackend кэш в памяти процесса
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   TimeProvider
}

// NewMemoryBackend создает кэш в памяти
func NewMemoryBackend(clock TimeProvider) *MemoryBackend {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &MemoryBackend{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

func (b *MemoryBackend) Get(_ context.Context, domainName string) ([]*domain.Reservation, bool, error) {
	b.mu.RLock()
	entry, ok := b.entries[domainName]
	b.mu.RUnlock()

	if !ok || !b.clock.Now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.list, true, nil
}

func (b *MemoryBackend) Set(_ context.Context, domainName string, list []*domain.Reservation, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[domainName] = memoryEntry{list: list, expiresAt: b.clock.Now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, domainName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, domainName)
	return nil
}
