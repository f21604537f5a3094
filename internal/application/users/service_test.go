package users

import (
	"context"
	"testing"

	"launchpad-backend/internal/constants"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUsersTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db}
}

func TestCreateUser(t *testing.T) {
	svc := setupUsersTest(t)

	user, err := svc.CreateUser(context.Background(), CreateInput{
		Fullname: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret!pass",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.UserID)
	assert.Equal(t, constants.Backer, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!pass")))

	_, err = svc.CreateUser(context.Background(), CreateInput{
		Fullname: "Ada Again",
		Email:    "ada@example.com",
		Password: "s3cret!pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := setupUsersTest(t)
	cases := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"missing fields", CreateInput{Email: "a@b.co"}, ErrMissingFields},
		{"bad fullname", CreateInput{Fullname: "x9!", Email: "a@b.co", Password: "s3cret!pass"}, ErrInvalidFullname},
		{"bad email", CreateInput{Fullname: "Ada", Email: "nope", Password: "s3cret!pass"}, ErrInvalidEmail},
		{"weak password", CreateInput{Fullname: "Ada", Email: "a@b.co", Password: "short"}, ErrInvalidPassword},
		{"bad role", CreateInput{Fullname: "Ada", Email: "a@b.co", Password: "s3cret!pass", Role: "root"}, ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateRole(t *testing.T) {
	svc := setupUsersTest(t)
	user, err := svc.CreateUser(context.Background(), CreateInput{
		Fullname: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret!pass",
	})
	require.NoError(t, err)

	_, err = svc.UpdateRole(context.Background(), user.UserID, "root")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateRole(context.Background(), uuid.New(), constants.Creator)
	assert.ErrorIs(t, err, ErrUserNotFound)

	updated, err := svc.UpdateRole(context.Background(), user.UserID, constants.Creator)
	require.NoError(t, err)
	assert.Equal(t, constants.Creator, updated.Role)

	got, err := svc.GetUser(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, constants.Creator, got.Role)
}
