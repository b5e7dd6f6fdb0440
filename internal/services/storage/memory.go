package storage

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrObjectNotFound = errors.New("object not found")

// Memory хранилище в памяти для дев-режима и тестов.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.objects[objectName] = b
	m.mu.Unlock()
	return objectName, nil
}

func (m *Memory) GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[objectName]
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}
	return "memory://" + objectName, nil
}

// Object возвращает содержимое загруженного объекта.
func (m *Memory) Object(objectName string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[objectName]
	return b, ok
}

var _ Storage = (*Memory)(nil)
