package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetBacklogQueryHandler struct {
	db *gorm.DB
}

func NewGetBacklogQueryHandler(db *gorm.DB) GetBacklogQueryHandler {
	return GetBacklogQueryHandler{db: db}
}

func (h GetBacklogQueryHandler) Handle(ctx context.Context, query GetBacklogQuery) (GetBacklogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBacklogQueryResponse{}, err
	}

	open := OpenStatuses()
	names := make([]string, 0, len(open))
	for _, s := range open {
		names = append(names, s.String())
	}

	var rows []struct {
		Status     string
		OpenCount  int64
		StaleCount int64
	}
	staleBefore := query.StaleBefore()
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			count(*) AS open_count,
			count(*) FILTER (WHERE updated_at < ?) AS stale_count
		FROM amendments
		WHERE status IN ?
		GROUP BY status
	`, staleBefore, names).Scan(&rows).Error
	if err != nil {
		return GetBacklogQueryResponse{}, err
	}

	counts := make(map[string]BacklogEntry, len(rows))
	for _, row := range rows {
		counts[row.Status] = BacklogEntry{Open: row.OpenCount, Stale: row.StaleCount}
	}

	entries := make([]BacklogEntry, 0, len(open))
	for _, s := range open {
		entry := counts[s.String()]
		entry.Status = s
		entries = append(entries, entry)
	}

	return GetBacklogQueryResponse{Entries: entries, StaleBefore: staleBefore}, nil
}

// Total sums the open and stale counts over all statuses.
func (r GetBacklogQueryResponse) Total() (open, stale int64) {
	for _, e := range r.Entries {
		open += e.Open
		stale += e.Stale
	}
	return open, stale
}
