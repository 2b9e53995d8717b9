package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/printshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type financialConfigRepository struct {
	db *gorm.DB
}

// NewFinancialConfigRepository creates a new financial config repository
func NewFinancialConfigRepository(db *gorm.DB) domainRepo.FinancialConfigRepository {
	return &financialConfigRepository{db: db}
}

func (r *financialConfigRepository) Get(ctx context.Context) (*entity.FinancialConfig, error) {
	var cfg entity.FinancialConfig
	err := r.db.WithContext(ctx).
		Preload("FixedCosts").
		Preload("Equipment").
		Order("created_at ASC").
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

// Save writes the singleton row and replaces fixed costs and equipment.
func (r *financialConfigRepository) Save(ctx context.Context, cfg *entity.FinancialConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fixedCosts, equipment := cfg.FixedCosts, cfg.Equipment

		if err := tx.Omit("FixedCosts", "Equipment").Save(cfg).Error; err != nil {
			return err
		}
		if err := tx.Where("financial_config_id = ?", cfg.ID).Delete(&entity.FixedCost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("financial_config_id = ?", cfg.ID).Delete(&entity.Equipment{}).Error; err != nil {
			return err
		}

		for i := range fixedCosts {
			fixedCosts[i].ID = uuid.Nil
			fixedCosts[i].FinancialConfigID = cfg.ID
		}
		for i := range equipment {
			equipment[i].ID = uuid.Nil
			equipment[i].FinancialConfigID = cfg.ID
		}
		if len(fixedCosts) > 0 {
			if err := tx.Create(&fixedCosts).Error; err != nil {
				return err
			}
		}
		if len(equipment) > 0 {
			if err := tx.Create(&equipment).Error; err != nil {
				return err
			}
		}
		cfg.FixedCosts, cfg.Equipment = fixedCosts, equipment
		return nil
	})
}
