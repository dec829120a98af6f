package queries

import (
	"context"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetAmendmentHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetAmendmentHistoryQueryHandler(db *gorm.DB) GetAmendmentHistoryQueryHandler {
	return GetAmendmentHistoryQueryHandler{db: db}
}

// Handle returns the entries oldest first. The create entry always comes first.
func (h GetAmendmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetAmendmentHistoryQuery,
) ([]amendment.HistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.AmendmentID()

	var visible int64
	if err := visibleTo(db, query.Actor()).Where("a.id = ?", id.Bytes()).Count(&visible).Error; err != nil {
		return nil, err
	}
	if visible == 0 {
		return nil, errs.NewObjectNotFoundError("amendment", id.String())
	}

	var rows []historyRow
	err := db.Table("amendment_history").
		Where("amendment_id = ?", id.Bytes()).
		Order("created_at, id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]amendment.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry, convErr := row.toEntry()
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
