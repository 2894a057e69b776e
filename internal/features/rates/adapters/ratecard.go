package adapters

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"courier-rates/internal/features/rates/domain"

	"github.com/xuri/excelize/v2"
)

// RateCardSheet is the sheet name written by WriteRateCard.
const RateCardSheet = "rates"

// ErrInvalidRateCard is returned when a rate card cannot be parsed.
var ErrInvalidRateCard = errors.New("invalid rate card")

var rateCardHeader = []string{"scope", "user_id", "zone_from", "zone_to", "weight_slab", "rate"}

// DefaultWeightSlabs are the slabs seeded for every zone pair.
var DefaultWeightSlabs = []float64{0.5, 1, 2, 3, 5, 7, 10, 15, 20, 25, 30, 35, 40, 45, 50}

// ReadRateCard parses the first sheet of an XLSX rate card.
// Blank rows are skipped; the first invalid row fails the whole card.
func ReadRateCard(r io.Reader) ([]domain.RateSlab, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRateCard, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidRateCard)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRateCard, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrInvalidRateCard)
	}

	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var slabs []domain.RateSlab
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		slab, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidRateCard, i+2, err)
		}
		slabs = append(slabs, slab)
	}
	return slabs, nil
}

func headerColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range rateCardHeader {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidRateCard, want)
		}
	}
	return cols, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, cols map[string]int) (domain.RateSlab, error) {
	cell := func(name string) string {
		if i := cols[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	scope, err := domain.ParseScope(cell("scope"), cell("user_id"))
	if err != nil {
		return domain.RateSlab{}, err
	}
	from, ok := domain.ParseZone(cell("zone_from"))
	if !ok {
		return domain.RateSlab{}, fmt.Errorf("unknown zone_from %q", cell("zone_from"))
	}
	to, ok := domain.ParseZone(cell("zone_to"))
	if !ok {
		return domain.RateSlab{}, fmt.Errorf("unknown zone_to %q", cell("zone_to"))
	}
	weight, err := strconv.ParseFloat(cell("weight_slab"), 64)
	if err != nil {
		return domain.RateSlab{}, fmt.Errorf("weight_slab: %v", err)
	}
	rate, err := strconv.ParseFloat(cell("rate"), 64)
	if err != nil {
		return domain.RateSlab{}, fmt.Errorf("rate: %v", err)
	}

	slab := domain.RateSlab{Scope: scope, ZoneFrom: from, ZoneTo: to, WeightSlab: weight, Rate: rate}
	return slab, slab.Validate()
}

// WriteRateCard writes slabs as an XLSX rate card that ReadRateCard accepts.
func WriteRateCard(w io.Writer, slabs []domain.RateSlab) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), RateCardSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(RateCardSheet, "A1", &rateCardHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range slabs {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := []any{string(s.Scope.Kind), s.Scope.UserID, string(s.ZoneFrom), string(s.ZoneTo), s.WeightSlab, s.Rate}
		if err := f.SetSheetRow(RateCardSheet, cellRef, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write rate card: %w", err)
	}
	return nil
}

type tariff struct {
	base  float64
	perKg float64
}

// tariffFor returns the default base and per-kg price of a zone pair.
func tariffFor(from, to domain.Zone) tariff {
	switch {
	case from == domain.ZoneMetro:
		return tariff{50, 8}
	case from == domain.ZoneWithinState:
		return tariff{60, 10}
	case from == domain.ZoneOther || to == domain.ZoneOther:
		return tariff{90, 18}
	case from == to:
		return tariff{70, 12}
	default:
		return tariff{80, 15}
	}
}

// DefaultGrid returns the platform default rate table for every zone pair
// ClassifyZone can produce.
func DefaultGrid() []domain.RateSlab {
	pairs := []domain.ZonePair{
		{From: domain.ZoneMetro, To: domain.ZoneMetro},
		{From: domain.ZoneWithinState, To: domain.ZoneWithinState},
	}
	regions := []domain.Zone{domain.ZoneNorth, domain.ZoneEast, domain.ZoneWest, domain.ZoneSouth, domain.ZoneOther}
	for _, from := range regions {
		for _, to := range regions {
			pairs = append(pairs, domain.ZonePair{From: from, To: to})
		}
	}

	grid := make([]domain.RateSlab, 0, len(pairs)*len(DefaultWeightSlabs))
	for _, p := range pairs {
		t := tariffFor(p.From, p.To)
		for _, w := range DefaultWeightSlabs {
			grid = append(grid, domain.RateSlab{
				Scope:      domain.DefaultScope(),
				ZoneFrom:   p.From,
				ZoneTo:     p.To,
				WeightSlab: w,
				Rate:       domain.RoundCurrency(t.base + t.perKg*w),
			})
		}
	}
	return grid
}
