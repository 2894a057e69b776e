package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"courier-rates/internal/core/logger"
	"courier-rates/internal/features/pincodes/domain"

	"go.uber.org/zap"
)

// datasetEntry is one pincode entry in either dataset layout.
type datasetEntry struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// decodeDataset accepts both the keyed layout
//
//	{"110075": {"city": "South West Delhi", "state": "DELHI"}}
//
// and the cleaned list layout
//
//	[{"pincode": "110075", "city": "South West Delhi", "state": "DELHI"}]
//
// Entries with malformed pincodes are skipped. The first occurrence of a
// pincode wins. Keyed entries are visited canonical keys first, then in key
// order, so a padded duplicate never shadows the clean key.
func decodeDataset(data []byte) (map[string]domain.PincodeRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("pincode dataset is empty")
	}

	var entries []datasetEntry
	switch trimmed[0] {
	case '{':
		var keyed map[string]datasetEntry
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return nil, fmt.Errorf("failed to decode pincode map: %w", err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ci, cj := keys[i] == domain.Normalize(keys[i]), keys[j] == domain.Normalize(keys[j])
			if ci != cj {
				return ci
			}
			return keys[i] < keys[j]
		})
		entries = make([]datasetEntry, 0, len(keyed))
		for _, pincode := range keys {
			e := keyed[pincode]
			e.Pincode = pincode
			entries = append(entries, e)
		}
	case '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode pincode list: %w", err)
		}
	default:
		return nil, fmt.Errorf("unexpected pincode dataset format: starts with %q", trimmed[0])
	}

	records := make(map[string]domain.PincodeRecord, len(entries))
	skipped := 0
	for _, e := range entries {
		pincode := domain.Normalize(e.Pincode)
		if !domain.ValidPincode(pincode) {
			skipped++
			continue
		}
		if _, seen := records[pincode]; seen {
			continue
		}
		records[pincode] = domain.PincodeRecord{
			Pincode: pincode,
			City:    domain.Normalize(e.City),
			State:   domain.Normalize(e.State),
		}
	}

	if skipped > 0 {
		logger.Get().Warn("Skipped malformed pincode entries", zap.Int("count", skipped))
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pincode dataset has no valid entries")
	}

	return records, nil
}
