package recordstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordCollectionModel is one collection row of the SQL medium.
type RecordCollectionModel struct {
	CollectionKey string         `gorm:"column:collection_key;primaryKey;size:191"`
	Data          datatypes.JSON `gorm:"column:data;not null"`
	Version       int64          `gorm:"column:version;not null;default:0"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (RecordCollectionModel) TableName() string {
	return "record_collections"
}

// GormMedium stores collections in the record_collections table. The schema
// is created by the goose migrations, not by AutoMigrate.
type GormMedium struct {
	db *gorm.DB
}

func NewGormMedium(db *gorm.DB) *GormMedium {
	return &GormMedium{db: db}
}

func (g *GormMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, _, found, err := g.GetVersioned(ctx, key)
	return data, found, err
}

func (g *GormMedium) GetVersioned(ctx context.Context, key string) ([]byte, int64, bool, error) {
	var model RecordCollectionModel
	err := g.db.WithContext(ctx).Where("collection_key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to load collection row %s: %w", key, err)
	}
	return []byte(model.Data), model.Version, true, nil
}

func (g *GormMedium) Put(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC()
	model := RecordCollectionModel{
		CollectionKey: key,
		Data:          datatypes.JSON(data),
		Version:       1,
		UpdatedAt:     now,
	}

	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data":       datatypes.JSON(data),
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collection row %s: %w", key, err)
	}
	return nil
}

func (g *GormMedium) PutIfVersion(ctx context.Context, key string, data []byte, expected int64) error {
	now := time.Now().UTC()
	db := g.db.WithContext(ctx)

	if expected == 0 {
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&RecordCollectionModel{
			CollectionKey: key,
			Data:          datatypes.JSON(data),
			Version:       1,
			UpdatedAt:     now,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to insert collection row %s: %w", key, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	}

	result := db.Model(&RecordCollectionModel{}).
		Where("collection_key = ? AND version = ?", key, expected).
		Updates(map[string]interface{}{
			"data":       datatypes.JSON(data),
			"version":    expected + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update collection row %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
