package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/repository"
	"gorm.io/gorm"
)

type beneficiaryRepository struct {
	db *gorm.DB
}

// NewBeneficiaryRepository creates a GORM-backed beneficiary repository bound
// to db, which may be a transaction session.
func NewBeneficiaryRepository(db *gorm.DB) repository.BeneficiaryRepository {
	return &beneficiaryRepository{db: db}
}

func (r *beneficiaryRepository) Create(ctx context.Context, b *domain.Beneficiary) error {
	return r.db.WithContext(ctx).Create(beneficiaryToModel(b)).Error
}

func (r *beneficiaryRepository) GetByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Beneficiary, error) {
	var m Beneficiary
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBeneficiaryNotFound
		}
		return nil, err
	}
	return beneficiaryToDomain(&m), nil
}

func (r *beneficiaryRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Beneficiary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&Beneficiary{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []Beneficiary
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	items := make([]domain.Beneficiary, 0, len(models))
	for i := range models {
		items = append(items, *beneficiaryToDomain(&models[i]))
	}
	return items, total, nil
}

func (r *beneficiaryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Beneficiary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBeneficiaryNotFound
	}
	return nil
}
