package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop-planner/internal/model"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore 基于 kv_entries 表的 KVStore（postgres / sqlite）
func NewGormStore(db *gorm.DB) KVStore {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key StoreKey) ([]byte, bool, error) {
	var entry model.KVEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key.String()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (s *gormStore) Set(ctx context.Context, key StoreKey, value []byte) error {
	entry := model.KVEntry{
		Key:     key.String(),
		Kind:    string(key.Kind),
		Shop:    key.Shop,
		WeekKey: key.Week,
		Value:   model.JSONText(value),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *gormStore) Delete(ctx context.Context, key StoreKey) error {
	return s.db.WithContext(ctx).
		Where("key = ?", key.String()).
		Delete(&model.KVEntry{}).Error
}

func (s *gormStore) ListKeys(ctx context.Context, kind Kind, shop string) ([]StoreKey, error) {
	var entries []model.KVEntry
	err := s.db.WithContext(ctx).
		Select("kind", "shop", "week_key").
		Where("kind = ? AND shop = ?", string(kind), shop).
		Order("week_key ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	keys := make([]StoreKey, len(entries))
	for i, e := range entries {
		keys[i] = StoreKey{Kind: Kind(e.Kind), Shop: e.Shop, Week: e.WeekKey}
	}
	return keys, nil
}

func (s *gormStore) Count(ctx context.Context, kind Kind, shop string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.KVEntry{}).
		Where("kind = ? AND shop = ?", string(kind), shop).
		Count(&n).Error
	return n, err
}
