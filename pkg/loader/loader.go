package loader

import (
	"context"
	"fmt"
)

// TableFile identifies one dataset table to fetch: the roster, the node or
// edge tables, or an annotation export. The actual content is retrieved via
// the associated TableFileLoader.
type TableFile struct {
	ID       string
	FilePath string
	Loader   TableFileLoader
}

// TableFileLoader retrieves the raw bytes of a dataset table from some
// backing source (local filesystem, object storage).
type TableFileLoader interface {
	GetFileBytes(ctx context.Context, file TableFile) ([]byte, error)
}

// CacheKey returns the cache identity of a file within a loader.
func CacheKey(file TableFile) string {
	return fmt.Sprintf("%s:%s", file.ID, file.FilePath)
}

// GetBytes fetches the file content through its loader.
func (f TableFile) GetBytes(ctx context.Context) ([]byte, error) {
	if f.Loader == nil {
		return nil, fmt.Errorf("no loader configured for file %q", f.FilePath)
	}
	return f.Loader.GetFileBytes(ctx, f)
}
