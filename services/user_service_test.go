package services

import (
	"context"
	"testing"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &models.CreateUserRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	found, err := svc.Authenticate(ctx, "carol", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.Authenticate(ctx, "carol", "wrong")
	assert.Equal(t, apierrors.ErrNotFound, err)

	_, err = svc.Authenticate(ctx, "nobody", "s3cret-pass")
	assert.Equal(t, apierrors.ErrNotFound, err)
}

func TestUserService_CreateUser_DuplicateUsername(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &models.CreateUserRequest{Username: "dave", Password: "password"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{Username: "dave", Password: "password"})
	assert.True(t, apierrors.Is(err, apierrors.ErrCodeInvalidInput))

	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{Username: "  ", Password: "password"})
	assert.True(t, apierrors.Is(err, apierrors.ErrCodeInvalidInput))
}

func TestUserService_GetAllUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	for _, name := range []string{"u1", "u2", "u3"} {
		createUser(t, db, name)
	}

	page, err := svc.GetAllUsers(ctx, utils.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u3", page.Items[0].Username)

	_, err = svc.GetUserByID(ctx, 9999)
	assert.Equal(t, apierrors.ErrNotFound, err)
}
