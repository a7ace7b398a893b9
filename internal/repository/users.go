package repository

import (
	"context"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/store"
)

const (
	usersDatabase   = "Users"
	usersCollection = "UsersCredentials"
)

const (
	fieldUsername = "username"
	fieldPassword = "password"
	fieldEmail    = "email"
)

// UserRepository owns the user credential records. There are no update or
// delete operations; users are created once and looked up by id, credential
// pair or email.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login domain.UserLogin) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type StoreUserRepository struct {
	users collection[domain.User]
}

var _ UserRepository = (*StoreUserRepository)(nil)

func NewUserRepository(s *store.Store) *StoreUserRepository {
	return &StoreUserRepository{
		users: store.GetCollection[domain.User](s, usersDatabase, usersCollection),
	}
}

func (r *StoreUserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	return r.users.Insert(ctx, user.ID, user)
}

func (r *StoreUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// GetByLogin matches the stored credential pair verbatim; passwords are
// opaque at this layer.
func (r *StoreUserRepository) GetByLogin(ctx context.Context, login domain.UserLogin) (*domain.User, error) {
	return r.first(ctx, map[string]any{
		fieldUsername: login.Username,
		fieldPassword: login.Password,
	})
}

func (r *StoreUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, map[string]any{fieldEmail: email})
}

func (r *StoreUserRepository) first(ctx context.Context, filter map[string]any) (*domain.User, error) {
	users, err := r.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}
