package csv

import (
	"context"
	"sync"

	"coachnet/pkg/loader"
	"coachnet/pkg/table"

	"golang.org/x/sync/singleflight"
)

// CSVTableLoader fetches CSV files through a base loader and parses them into
// tables. Parsed tables are cached per file.
type CSVTableLoader struct {
	loader loader.TableFileLoader

	cache   map[string]*table.Table
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewCSVTableLoader creates a new CSVTableLoader with the given base loader.
func NewCSVTableLoader(loader loader.TableFileLoader) *CSVTableLoader {
	return &CSVTableLoader{
		loader: loader,
		cache:  make(map[string]*table.Table),
	}
}

// GetTable retrieves and parses the CSV file content.
func (l *CSVTableLoader) GetTable(ctx context.Context, file loader.TableFile) (*table.Table, error) {
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

		content, err := l.loader.GetFileBytes(ctx, file)
		if err != nil {
			return nil, err
		}

		parsed, err := table.Parse(content)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = parsed
		l.cacheMu.Unlock()

		return parsed, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*table.Table), nil
}
