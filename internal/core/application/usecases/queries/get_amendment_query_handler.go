package queries

import (
	"context"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetAmendmentQueryHandler struct {
	db *gorm.DB
}

func NewGetAmendmentQueryHandler(db *gorm.DB) GetAmendmentQueryHandler {
	return GetAmendmentQueryHandler{db: db}
}

func (h GetAmendmentQueryHandler) Handle(ctx context.Context, query GetAmendmentQuery) (amendment.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return amendment.Snapshot{}, err
	}

	var rows []amendmentRow
	err := visibleTo(h.db.WithContext(ctx), query.Actor()).
		Select("a.*").
		Where("a.id = ?", query.AmendmentID().Bytes()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return amendment.Snapshot{}, err
	}
	if len(rows) == 0 {
		return amendment.Snapshot{}, errs.NewObjectNotFoundError("amendment", query.AmendmentID().String())
	}

	return rows[0].toSnapshot()
}
