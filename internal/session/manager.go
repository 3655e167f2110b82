package session

import "sync"

// Manager keeps one value per chat: a round, a guessing game or a counter.
type Manager[T any] struct {
	items map[int64]T
	locks map[int64]*sync.Mutex
	mu    sync.RWMutex
}

func NewManager[T any]() *Manager[T] {
	return &Manager[T]{
		items: make(map[int64]T),
		locks: make(map[int64]*sync.Mutex),
	}
}

func (m *Manager[T]) Get(chatID int64) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[chatID]
	return v, ok
}

func (m *Manager[T]) Set(chatID int64, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[chatID] = v
}

func (m *Manager[T]) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, chatID)
}

// Lock serialises work on one chat's value; call the returned func to release.
func (m *Manager[T]) Lock(chatID int64) func() {
	m.mu.Lock()
	l, ok := m.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[chatID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (m *Manager[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
