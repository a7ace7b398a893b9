package webapi

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/repository"
)

// fakeCatalogRepo is an in-memory CatalogItemRepository for handler tests,
// honouring the same error contract as the store-backed implementation.
type fakeCatalogRepo struct {
	mu       sync.Mutex
	items    map[string]domain.CatalogItem
	order    []string
	archived []domain.CatalogItem
}

var _ repository.CatalogItemRepository = (*fakeCatalogRepo)(nil)

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: make(map[string]domain.CatalogItem)}
}

func (f *fakeCatalogRepo) GetAll(context.Context) ([]domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.order) == 0 {
		return nil, repository.ErrNoItems
	}
	out := make([]domain.CatalogItem, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id string) (*domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (f *fakeCatalogRepo) Create(_ context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = item
	f.order = append(f.order, item.ID)
	return &item, nil
}

func (f *fakeCatalogRepo) UpdateName(_ context.Context, newName string, id string) (*domain.CatalogItem, error) {
	return f.patch(id, func(item *domain.CatalogItem) { item.Name = newName })
}

func (f *fakeCatalogRepo) UpdatePrice(_ context.Context, newPrice decimal.Decimal, id string) (*domain.CatalogItem, error) {
	return f.patch(id, func(item *domain.CatalogItem) { item.Price = newPrice })
}

func (f *fakeCatalogRepo) UpdateDescription(_ context.Context, newDescription string, id string) (*domain.CatalogItem, error) {
	return f.patch(id, func(item *domain.CatalogItem) { item.Description = newDescription })
}

func (f *fakeCatalogRepo) UpdateImages(_ context.Context, newImages []string, id string) (*domain.CatalogItem, error) {
	return f.patch(id, func(item *domain.CatalogItem) { item.ImageLocations = newImages })
}

func (f *fakeCatalogRepo) Replace(_ context.Context, newItem domain.CatalogItem, id string) (*domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	replaced := domain.CatalogItem{
		ID:             id,
		Name:           newItem.Name,
		Price:          newItem.Price,
		Description:    newItem.Description,
		ImageLocations: newItem.ImageLocations,
		CreatedAt:      old.CreatedAt,
		UpdatedAt:      time.Now().UTC(),
	}
	f.items[id] = replaced
	return &replaced, nil
}

func (f *fakeCatalogRepo) DeleteByID(_ context.Context, id string) (*domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.items, id)
	for i, known := range f.order {
		if known == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	f.archived = append(f.archived, item.ArchiveCopy())
	return &item, nil
}

func (f *fakeCatalogRepo) patch(id string, mutate func(*domain.CatalogItem)) (*domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	mutate(&item)
	item.UpdatedAt = time.Now().UTC()
	f.items[id] = item
	return &item, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login domain.UserLogin) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == login.Username && user.Password == login.Password {
			match := user
			return &match, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			match := user
			return &match, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeCustomerRepo mirrors the store-backed repository, read stubs included.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers []domain.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (f *fakeCustomerRepo) Create(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers = append(f.customers, customer)
	return &customer, nil
}

func (f *fakeCustomerRepo) GetByID(context.Context, string) (*domain.Customer, error) {
	panic("customer lookup by id is not implemented")
}

func (f *fakeCustomerRepo) GetAll(context.Context) ([]domain.Customer, error) {
	panic("customer listing is not implemented")
}
