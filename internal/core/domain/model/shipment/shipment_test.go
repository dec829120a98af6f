package shipment_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreShipment(t *testing.T) {
	id := kernel.NewUUID()
	client := kernel.NewUUID()
	vendor := kernel.NewUUID()

	t.Run("should restore shipment with winner", func(t *testing.T) {
		s, err := shipment.RestoreShipment(id, client, &vendor)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.ID().IsEqual(id))
		assert.True(t, s.IsOwnedBy(client))
		assert.False(t, s.IsOwnedBy(vendor))
		assert.True(t, s.IsWonBy(vendor))
		assert.False(t, s.IsWonBy(client))
	})

	t.Run("should restore shipment without winner", func(t *testing.T) {
		s, err := shipment.RestoreShipment(id, client, nil)

		require.NoError(t, err)
		assert.Nil(t, s.WinningVendorID())
		assert.False(t, s.IsWonBy(vendor))
	})

	t.Run("should fail on missing identifiers", func(t *testing.T) {
		_, err := shipment.RestoreShipment(kernel.UUID{}, client, nil)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

		var zero kernel.UUID
		_, err = shipment.RestoreShipment(id, client, &zero)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s *shipment.Shipment

		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, s.Validate())
	})
}
