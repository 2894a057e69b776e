package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"courier-rates/internal/core/httpclient"
	"courier-rates/internal/features/pincodes/domain"
	"courier-rates/internal/features/pincodes/ports"
)

// maxDatasetBytes bounds the download; the full India dataset is ~20MB.
const maxDatasetBytes = 64 << 20

// HTTPSource downloads the pincode dataset from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource for url.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: httpclient.NewClient("pincode-dataset", 60*time.Second),
	}
}

// Load downloads and decodes the dataset.
func (s *HTTPSource) Load(ctx context.Context) (map[string]domain.PincodeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download pincode dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode dataset download returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read pincode dataset: %w", err)
	}
	if len(data) > maxDatasetBytes {
		return nil, fmt.Errorf("pincode dataset exceeds %d bytes", maxDatasetBytes)
	}

	return decodeDataset(data)
}

// IsURL reports whether location should be fetched over HTTP.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// NewSource returns an HTTPSource for URLs and a FileSource otherwise.
func NewSource(location string) ports.DatasetSource {
	if IsURL(location) {
		return NewHTTPSource(location)
	}
	return NewFileSource(location)
}
