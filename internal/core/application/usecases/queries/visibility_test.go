package queries

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRow() amendmentRow {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	return amendmentRow{
		ID:          uuid.New(),
		ShipmentID:  uuid.New(),
		RequestedBy: uuid.New(),
		Reason:      "port delay",
		Status:      "requested",
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func TestAmendmentRow_ToSnapshot(t *testing.T) {
	t.Run("maps a valid row", func(t *testing.T) {
		row := storedRow()

		s, err := row.toSnapshot()

		require.NoError(t, err)
		assert.Equal(t, row.ID.String(), s.ID.String())
		assert.Equal(t, amendment.Requested, s.Status)
	})

	t.Run("unknown stored status is internal", func(t *testing.T) {
		row := storedRow()
		row.Status = "archived"

		_, err := row.toSnapshot()

		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
		assert.Contains(t, err.Error(), "restore amendment "+row.ID.String())
	})

	t.Run("negative stored cost is internal", func(t *testing.T) {
		row := storedRow()
		cost := decimal.RequireFromString("-1")
		row.ExtraCost = &cost

		_, err := row.toSnapshot()

		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	})
}

func TestHistoryRow_ToEntry(t *testing.T) {
	row := historyRow{
		ID:          uuid.New(),
		AmendmentID: uuid.New(),
		FromStatus:  amendment.Requested.String(),
		ToStatus:    "archived",
		Action:      amendment.AdminApprove.String(),
		ActorID:     uuid.New(),
		ActorRole:   "admin",
		CreatedAt:   time.Now().UTC(),
	}

	_, err := row.toEntry()

	require.Error(t, err)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	assert.Contains(t, err.Error(), "restore history entry "+row.ID.String())
}
