package repository

import (
	"tag_tracker_go/internal/model"

	"gorm.io/gorm"
)

const colorFormulaBatchSize = 100

// ColorFormulaRepository backs the offline CSV seeding tool.
type ColorFormulaRepository interface {
	// ExistingColorNumbers reports which of numbers are already stored.
	ExistingColorNumbers(numbers []string) (map[string]struct{}, error)
	// CreateAll inserts formulas in batches inside a single transaction.
	CreateAll(formulas []model.ColorFormula) error
	Count() (int64, error)
}

type colorFormulaRepository struct {
	db *gorm.DB
}

func NewColorFormulaRepository(db *gorm.DB) ColorFormulaRepository {
	return &colorFormulaRepository{db: db}
}

func (r *colorFormulaRepository) ExistingColorNumbers(numbers []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(numbers) == 0 {
		return existing, nil
	}

	var found []string
	if err := r.db.Model(&model.ColorFormula{}).
		Where("color_number IN ?", numbers).
		Pluck("color_number", &found).Error; err != nil {
		return nil, err
	}
	for _, n := range found {
		existing[n] = struct{}{}
	}
	return existing, nil
}

func (r *colorFormulaRepository) CreateAll(formulas []model.ColorFormula) error {
	if len(formulas) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&formulas, colorFormulaBatchSize).Error
	})
}

func (r *colorFormulaRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.ColorFormula{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
