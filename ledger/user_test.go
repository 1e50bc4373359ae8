package ledger

import (
	"context"
	"errors"
	"testing"

	"expensetracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignRole(t *testing.T) {
	s, db := setupLedger(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.User{ID: 3, Username: "root", Password: "x", Role: models.RoleSuperAdmin}).Error)

	user, err := s.AssignRole(ctx, alice, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, alice).Error)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)

	_, err = s.AssignRole(ctx, alice, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = s.AssignRole(ctx, 3, models.RoleUser)
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = s.AssignRole(ctx, 404, models.RoleUser)
	assert.True(t, errors.Is(err, ErrNotFound))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
