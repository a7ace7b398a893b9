package app

import (
	"github.com/andreishark/api-backend-ecommerce/config"
	"github.com/andreishark/api-backend-ecommerce/internal/images"
	"github.com/andreishark/api-backend-ecommerce/internal/repository"
	"github.com/andreishark/api-backend-ecommerce/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides document store access
type StoreProvider interface {
	Store() *store.Store
}

// ImagesProvider provides the image set reconciler
type ImagesProvider interface {
	Images() *images.Manager
}

// RepositoryOwner provides the data-access repositories
type RepositoryOwner interface {
	CatalogItems() repository.CatalogItemRepository
	Users() repository.UserRepository
	Customers() repository.CustomerRepository
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	StoreProvider
	ImagesProvider
	RepositoryOwner

	Release()
}
