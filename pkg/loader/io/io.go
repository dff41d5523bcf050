package io

import (
	"context"
	"os"
	"sync"

	"coachnet/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// IOTableFileLoader loads dataset tables from the local filesystem with caching.
type IOTableFileLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewIOTableFileLoader creates a new filesystem-based table loader.
func NewIOTableFileLoader() *IOTableFileLoader {
	return &IOTableFileLoader{
		cache: make(map[string][]byte),
	}
}

// GetFileBytes reads the file content from the filesystem. Results are cached.
func (l *IOTableFileLoader) GetFileBytes(ctx context.Context, file loader.TableFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := os.ReadFile(file.FilePath)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = content
		l.cacheMu.Unlock()

		return content, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
