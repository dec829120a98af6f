package queries

import (
	"context"

	"freight/internal/core/domain/model/amendment"

	"gorm.io/gorm"
)

// ListAmendmentsQueryHandler reads amendment pages straight from the
// amendments table.
type ListAmendmentsQueryHandler struct {
	db *gorm.DB
}

func NewListAmendmentsQueryHandler(db *gorm.DB) ListAmendmentsQueryHandler {
	return ListAmendmentsQueryHandler{db: db}
}

// Handle returns the page ordered by creation time, newest first.
func (h ListAmendmentsQueryHandler) Handle(
	ctx context.Context,
	query ListAmendmentsQuery,
) (ListAmendmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListAmendmentsQueryResponse{}, err
	}

	tx := visibleTo(h.db.WithContext(ctx), query.Actor())
	if status := query.Status(); status != nil {
		tx = tx.Where("a.status = ?", status.String())
	}

	var rows []amendmentRow
	err := tx.Select("a.*").
		Order("a.created_at DESC, a.id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Scan(&rows).Error
	if err != nil {
		return ListAmendmentsQueryResponse{}, err
	}

	items := make([]amendment.Snapshot, 0, len(rows))
	for _, row := range rows {
		s, convErr := row.toSnapshot()
		if convErr != nil {
			return ListAmendmentsQueryResponse{}, convErr
		}
		items = append(items, s)
	}

	return ListAmendmentsQueryResponse{
		Items:  items,
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}, nil
}
