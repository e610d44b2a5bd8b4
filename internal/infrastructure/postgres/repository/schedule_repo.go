package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultScheduleRepository struct {
	DB *gorm.DB
}

func NewDefaultScheduleRepository(db *gorm.DB) *DefaultScheduleRepository {
	return &DefaultScheduleRepository{DB: db}
}

func (r *DefaultScheduleRepository) GetEntry(kind domain.CommissionKind, tier *domain.PackageTier, level int) (*domain.ScheduleEntry, error) {
	query := r.DB.Where("kind = ? AND level = ?", string(kind), level)
	if tier != nil {
		query = query.Where("package_tier = ?", string(*tier))
	} else {
		query = query.Where("package_tier IS NULL")
	}

	var model models.ScheduleEntryModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: schedule entry %s level %d", domain.ErrNotFound, kind, level)
		}
		return nil, err
	}
	return mappers.ToDomainScheduleEntry(&model), nil
}

func (r *DefaultScheduleRepository) ListEntries(kind domain.CommissionKind) ([]*domain.ScheduleEntry, error) {
	var entryModels []models.ScheduleEntryModel
	if err := r.DB.Where("kind = ?", string(kind)).
		Order("package_tier ASC, level ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.ScheduleEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = mappers.ToDomainScheduleEntry(&model)
	}
	return entries, nil
}

func (r *DefaultScheduleRepository) UpsertEntry(entry *domain.ScheduleEntry) error {
	return serializable(r.DB, func(tx *gorm.DB) error {
		query := tx.Where("kind = ? AND level = ?", string(entry.Kind), entry.Level)
		if entry.PackageTier != nil {
			query = query.Where("package_tier = ?", string(*entry.PackageTier))
		} else {
			query = query.Where("package_tier IS NULL")
		}

		var existing models.ScheduleEntryModel
		err := query.First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(mappers.ToGORMScheduleEntry(entry)).Error
		case err != nil:
			return err
		default:
			return tx.Model(&existing).Updates(map[string]interface{}{
				"nominal":    entry.Nominal,
				"updated_at": time.Now(),
			}).Error
		}
	})
}
