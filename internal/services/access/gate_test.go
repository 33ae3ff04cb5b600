// File: internal/services/access/gate_test.go
package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/permission"
	"github.com/2witstudios/pagespace.team/internal/services"
)

type fakePermissionRepo struct {
	levels map[string]domain.AccessLevel // keyed by userID+"/"+pageID
	err    error
}

func (f *fakePermissionRepo) FindLevel(ctx context.Context, userID, pageID string) (domain.AccessLevel, error) {
	if f.err != nil {
		return "", f.err
	}
	if level, ok := f.levels[userID+"/"+pageID]; ok {
		return level, nil
	}
	return "", permission.ErrNoPermission
}

func TestGate_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("allows equal level", func(t *testing.T) {
		gate := NewGate(&fakePermissionRepo{
			levels: map[string]domain.AccessLevel{"u1/p1": domain.AccessEdit},
		}, &services.NoOpLogger{})

		level, err := gate.Check(ctx, "u1", "p1", domain.AccessEdit)
		require.NoError(t, err)
		assert.Equal(t, domain.AccessEdit, level)
	})

	t.Run("allows higher level", func(t *testing.T) {
		gate := NewGate(&fakePermissionRepo{
			levels: map[string]domain.AccessLevel{"u1/p1": domain.AccessDelete},
		}, &services.NoOpLogger{})

		level, err := gate.Check(ctx, "u1", "p1", domain.AccessView)
		require.NoError(t, err)
		assert.Equal(t, domain.AccessDelete, level)
	})

	t.Run("forbids lower level", func(t *testing.T) {
		gate := NewGate(&fakePermissionRepo{
			levels: map[string]domain.AccessLevel{"u1/p1": domain.AccessView},
		}, &services.NoOpLogger{})

		_, err := gate.Check(ctx, "u1", "p1", domain.AccessEdit)
		var accessErr *AccessError
		require.ErrorAs(t, err, &accessErr)
		assert.True(t, accessErr.IsForbidden())
	})

	t.Run("forbids missing grant", func(t *testing.T) {
		gate := NewGate(&fakePermissionRepo{}, &services.NoOpLogger{})

		_, err := gate.Check(ctx, "u1", "p1", domain.AccessView)
		var accessErr *AccessError
		require.ErrorAs(t, err, &accessErr)
		assert.True(t, accessErr.IsForbidden())
	})

	t.Run("lookup failure is not forbidden", func(t *testing.T) {
		gate := NewGate(&fakePermissionRepo{err: errors.New("db down")}, &services.NoOpLogger{})

		_, err := gate.Check(ctx, "u1", "p1", domain.AccessView)
		var accessErr *AccessError
		require.ErrorAs(t, err, &accessErr)
		assert.False(t, accessErr.IsForbidden())
	})

	t.Run("rejects blank identifiers", func(t *testing.T) {
		gate := NewGate(&fakePermissionRepo{}, &services.NoOpLogger{})
		_, err := gate.Check(ctx, "", "p1", domain.AccessView)
		assert.Error(t, err)
	})
}
