package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-rates/internal/features/rates/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 500

// RateSlabRow is the persisted form of domain.RateSlab.
// Default-scope rows store an empty user id so the unique key stays total.
type RateSlabRow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Scope      string    `gorm:"size:16;not null;uniqueIndex:idx_rate_slabs_key,priority:1"`
	UserID     string    `gorm:"size:64;not null;default:'';uniqueIndex:idx_rate_slabs_key,priority:2"`
	ZoneFrom   string    `gorm:"size:32;not null;uniqueIndex:idx_rate_slabs_key,priority:3"`
	ZoneTo     string    `gorm:"size:32;not null;uniqueIndex:idx_rate_slabs_key,priority:4"`
	WeightSlab float64   `gorm:"type:numeric(8,2);not null;uniqueIndex:idx_rate_slabs_key,priority:5"`
	Rate       float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (RateSlabRow) TableName() string {
	return "rate_slabs"
}

func toRow(s domain.RateSlab) RateSlabRow {
	return RateSlabRow{
		Scope:      string(s.Scope.Kind),
		UserID:     s.Scope.UserID,
		ZoneFrom:   string(s.ZoneFrom),
		ZoneTo:     string(s.ZoneTo),
		WeightSlab: s.WeightSlab,
		Rate:       s.Rate,
	}
}

func (r RateSlabRow) toDomain() domain.RateSlab {
	return domain.RateSlab{
		Scope:      domain.Scope{Kind: domain.ScopeKind(r.Scope), UserID: r.UserID},
		ZoneFrom:   domain.Zone(r.ZoneFrom),
		ZoneTo:     domain.Zone(r.ZoneTo),
		WeightSlab: r.WeightSlab,
		Rate:       r.Rate,
	}
}

// GormStore implements ports.RateRepository on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the rate_slabs table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&RateSlabRow{}); err != nil {
		return fmt.Errorf("failed to migrate rate_slabs: %w", err)
	}
	return nil
}

func (s *GormStore) run(ctx context.Context, key domain.SlabKey) *gorm.DB {
	return s.db.WithContext(ctx).Model(&RateSlabRow{}).
		Where("scope = ? AND user_id = ? AND zone_from = ? AND zone_to = ?",
			string(key.Scope.Kind), key.Scope.UserID, string(key.ZoneFrom), string(key.ZoneTo))
}

func first(db *gorm.DB) (*domain.RateSlab, error) {
	var row RateSlabRow
	err := db.Limit(1).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rate_slabs: %w", err)
	}
	slab := row.toDomain()
	return &slab, nil
}

// Exact returns the row at weightSlab.
func (s *GormStore) Exact(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	return first(s.run(ctx, key).Where("weight_slab = ?", weightSlab))
}

// NearestBelow returns the largest slab strictly below weightSlab.
func (s *GormStore) NearestBelow(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	return first(s.run(ctx, key).Where("weight_slab < ?", weightSlab).Order("weight_slab DESC"))
}

// NearestAbove returns the smallest slab strictly above weightSlab.
func (s *GormStore) NearestAbove(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	return first(s.run(ctx, key).Where("weight_slab > ?", weightSlab).Order("weight_slab ASC"))
}

// Slabs returns the run ascending by weight slab.
func (s *GormStore) Slabs(ctx context.Context, key domain.SlabKey) ([]domain.RateSlab, error) {
	var rows []RateSlabRow
	if err := s.run(ctx, key).Order("weight_slab ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list rate_slabs: %w", err)
	}
	out := make([]domain.RateSlab, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Upsert writes rows in batches, replacing the rate of rows that already exist.
// Duplicate keys within slabs collapse to the last occurrence.
func (s *GormStore) Upsert(ctx context.Context, slabs []domain.RateSlab) (int, error) {
	type rowKey struct {
		key  domain.SlabKey
		slab float64
	}

	index := make(map[rowKey]int, len(slabs))
	rows := make([]RateSlabRow, 0, len(slabs))
	for i, slab := range slabs {
		if err := slab.Validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		k := rowKey{key: slab.Key(), slab: slab.WeightSlab}
		if at, ok := index[k]; ok {
			rows[at].Rate = slab.Rate
			continue
		}
		index[k] = len(rows)
		rows = append(rows, toRow(slab))
	}
	if len(rows) == 0 {
		return 0, nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "scope"}, {Name: "user_id"}, {Name: "zone_from"}, {Name: "zone_to"}, {Name: "weight_slab"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"rate":       clause.Expr{SQL: "EXCLUDED.rate"},
			"updated_at": clause.Expr{SQL: "EXCLUDED.updated_at"},
		}),
	}).CreateInBatches(&rows, upsertBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to upsert rate_slabs: %w", err)
	}
	return len(rows), nil
}

// DeleteScope removes every row of the run.
func (s *GormStore) DeleteScope(ctx context.Context, key domain.SlabKey) error {
	if err := s.run(ctx, key).Delete(&RateSlabRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete rate_slabs: %w", err)
	}
	return nil
}
