package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
)

func newUserRepo() (*StoreUserRepository, *memCollection[domain.User]) {
	users := newMemCollection[domain.User]()
	return &StoreUserRepository{users: users}, users
}

func TestUserCreateAndGetByID(t *testing.T) {
	repo, _ := newUserRepo()
	ctx := context.Background()

	user := domain.UserCreate{
		Username: "alice",
		Password: "s3cret",
		Email:    "alice@example.com",
		Role:     "admin",
	}.User()

	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.Username)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, *created, *found)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetByLogin(t *testing.T) {
	repo, _ := newUserRepo()
	ctx := context.Background()

	user := domain.UserCreate{
		Username: "bob",
		Password: "hunter2",
		Email:    "bob@example.com",
		Role:     "user",
	}.User()
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)

	found, err := repo.GetByLogin(ctx, domain.UserLogin{Username: "bob", Password: "hunter2"})
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	// both halves of the credential pair must match
	_, err = repo.GetByLogin(ctx, domain.UserLogin{Username: "bob", Password: "wrong"})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByLogin(ctx, domain.UserLogin{Username: "eve", Password: "hunter2"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetByEmail(t *testing.T) {
	repo, _ := newUserRepo()
	ctx := context.Background()

	user := domain.UserCreate{
		Username: "carol",
		Password: "pw",
		Email:    "carol@example.com",
		Role:     "user",
	}.User()
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)

	found, err := repo.GetByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerReadPathsPanic(t *testing.T) {
	repo := &StoreCustomerRepository{customers: newMemCollection[domain.Customer]()}
	ctx := context.Background()

	customer := domain.CustomerCreate{
		FirstName: "Dana",
		LastName:  "Jones",
		Email:     "dana@example.com",
	}.Customer()

	created, err := repo.Create(ctx, customer)
	require.NoError(t, err)
	require.Equal(t, "Dana Jones", created.FullName())

	require.Panics(t, func() { _, _ = repo.GetByID(ctx, created.ID) })
	require.Panics(t, func() { _, _ = repo.GetAll(ctx) })
}
