package adapters

import (
	"context"
	"fmt"
	"os"

	"courier-rates/internal/features/pincodes/domain"
)

// FileSource reads the pincode dataset from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the whole file.
func (s *FileSource) Load(ctx context.Context) (map[string]domain.PincodeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pincode dataset %s: %w", s.path, err)
	}
	return decodeDataset(data)
}
