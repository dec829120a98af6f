package amendmentrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAmendmentRepository implements ports.AmendmentRepository using GORM.
type GormAmendmentRepository struct {
	db *gorm.DB
}

// NewGormAmendmentRepository creates a repository bound to db, which is
// either the pool or an open transaction.
func NewGormAmendmentRepository(db *gorm.DB) *GormAmendmentRepository {
	return &GormAmendmentRepository{db: db}
}

// Add inserts a new amendment.
func (r *GormAmendmentRepository) Add(ctx context.Context, aggregate *amendment.Amendment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an amendment by ID.
func (r *GormAmendmentRepository) Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AmendmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("amendment", id.String())
		}
		return nil, err
	}

	// A stored row that fails restore is corruption, not caller input.
	a, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("restore amendment %s: %v", id, err)
	}
	return a, nil
}

// UpdateWhere is a single UPDATE ... WHERE id = ? AND status = ?. Zero rows
// affected means either the amendment is gone or another writer changed its
// status first; a follow-up count tells the two apart.
func (r *GormAmendmentRepository) UpdateWhere(
	ctx context.Context,
	aggregate *amendment.Amendment,
	expected amendment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AmendmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":          dto.Status,
			"extra_cost":      dto.ExtraCost,
			"delay_days":      dto.DelayDays,
			"vendor_reason":   dto.VendorReason,
			"updated_at":      dto.UpdatedAt,
			"vendor_reply_at": dto.VendorReplyAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&AmendmentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("amendment", aggregate.ID().String())
	}
	return errs.NewConflictError("amendment", aggregate.ID().String(), expected.String())
}

// AppendHistory inserts one audit row.
func (r *GormAmendmentRepository) AppendHistory(ctx context.Context, entry amendment.HistoryEntry) error {
	if err := entry.ID.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
