package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a GORM-backed transaction repository bound
// to db, which may be a transaction session.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	err := r.db.WithContext(ctx).Create(transactionToModel(t)).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateReference
	}
	return err
}

func (r *transactionRepository) Upsert(ctx context.Context, t *domain.Transaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "amount", "currency", "narration", "updated_at",
			}),
		}).
		Create(transactionToModel(t)).Error
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) GetByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	items := make([]domain.Transaction, 0, len(models))
	for i := range models {
		items = append(items, *transactionToDomain(&models[i]))
	}
	return items, total, nil
}
