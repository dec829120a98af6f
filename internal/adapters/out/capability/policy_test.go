package capability_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"freight/internal/adapters/out/capability"
	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultPolicy(t *testing.T) {
	policy, err := capability.Default(discardLogger())
	require.NoError(t, err)

	want := map[actor.Role][]amendment.Action{
		actor.Client: {amendment.Create},
		actor.Admin:  {amendment.AdminApprove, amendment.AdminReject, amendment.AdminPush},
		actor.Vendor: {amendment.VendorApprove, amendment.VendorReject},
	}

	for role, granted := range want {
		for _, action := range amendment.AllActions() {
			allowed, allowErr := policy.Allows(role, action)
			require.NoError(t, allowErr)
			assert.Equal(t, contains(granted, action), allowed,
				"%s / %s", role, action)
		}
	}
}

func TestDefaultPolicy_BacksTransitionAuthority(t *testing.T) {
	policy, err := capability.Default(discardLogger())
	require.NoError(t, err)

	_, err = services.NewTransitionAuthority(policy)

	require.NoError(t, err)
}

func TestNewPolicy(t *testing.T) {
	t.Run("complete table in another order loads", func(t *testing.T) {
		policy, err := capability.NewPolicy([]byte(`
version: 1
capabilities:
  vendor: [vendor_reject, vendor_approve]
  admin: [admin_push, admin_reject, admin_approve, admin_push]
  client: [create]
`), discardLogger())
		require.NoError(t, err)

		allowed, err := policy.Allows(actor.Admin, amendment.AdminPush)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = policy.Allows(actor.Client, amendment.AdminPush)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("action granted to two roles", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte(`
version: 1
capabilities:
  client: [create, admin_push]
  admin: [admin_approve, admin_reject, admin_push]
  vendor: [vendor_approve, vendor_reject]
`), discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "admin_push is granted to admin, client")
	})

	t.Run("action granted to no role", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte(`
version: 1
capabilities:
  admin: [admin_push]
`), discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "create is granted to no role")
		assert.Contains(t, err.Error(), "vendor_reject is granted to no role")
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte("version: 1\ncapabilities: {}\n"), discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte("version: 2\ncapabilities: {}\n"), discardLogger())

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte("version: 1\ncapabilities:\n  auditor: [create]\n"), discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "auditor")
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte("version: 1\ncapabilities:\n  admin: [escalate]\n"), discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "escalate")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := capability.NewPolicy([]byte("version: [1"), discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path loads the embedded default", func(t *testing.T) {
		policy, err := capability.Load("", discardLogger())
		require.NoError(t, err)

		allowed, err := policy.Allows(actor.Vendor, amendment.VendorReject)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("reads an override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		doc := "version: 1\ncapabilities:\n" +
			"  client: [create]\n" +
			"  admin: [admin_approve, admin_reject, admin_push]\n" +
			"  vendor: [vendor_approve, vendor_reject]\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		policy, err := capability.Load(path, discardLogger())
		require.NoError(t, err)

		allowed, err := policy.Allows(actor.Vendor, amendment.VendorReject)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("override widening an admin action is refused", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		doc := "version: 1\ncapabilities:\n" +
			"  client: [create, admin_push]\n" +
			"  admin: [admin_approve, admin_reject, admin_push]\n" +
			"  vendor: [vendor_approve, vendor_reject]\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		policy, err := capability.Load(path, discardLogger())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, policy)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := capability.Load(filepath.Join(t.TempDir(), "absent.yaml"), discardLogger())

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestAllows_RejectsUnknownValues(t *testing.T) {
	policy, err := capability.Default(discardLogger())
	require.NoError(t, err)

	_, err = policy.Allows(actor.UnknownRole, amendment.Create)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = policy.Allows(actor.Client, amendment.UnknownAction)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func contains(actions []amendment.Action, action amendment.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
