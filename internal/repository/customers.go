package repository

import (
	"context"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/store"
)

const (
	customersDatabase   = "customers"
	customersCollection = "profiles"
)

// CustomerRepository owns customer profiles. Only Create is implemented; the
// read paths are deliberate fail-fast stubs.
type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetAll(ctx context.Context) ([]domain.Customer, error)
}

type StoreCustomerRepository struct {
	customers collection[domain.Customer]
}

var _ CustomerRepository = (*StoreCustomerRepository)(nil)

func NewCustomerRepository(s *store.Store) *StoreCustomerRepository {
	return &StoreCustomerRepository{
		customers: store.GetCollection[domain.Customer](s, customersDatabase, customersCollection),
	}
}

func (r *StoreCustomerRepository) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	return r.customers.Insert(ctx, customer.ID, customer)
}

func (r *StoreCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	panic("customer lookup by id is not implemented")
}

func (r *StoreCustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	panic("customer listing is not implemented")
}
