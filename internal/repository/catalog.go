package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/store"
)

const (
	catalogDatabase   = "catalog"
	catalogCollection = "items"
)

// Field names of the stored catalog document, matching the domain json tags.
const (
	fieldName           = "name"
	fieldPrice          = "price"
	fieldDescription    = "description"
	fieldImageLocations = "image_locations"
	fieldUpdatedAt      = "updated_at"
)

// CatalogItemRepository is the catalog-item data access contract.
type CatalogItemRepository interface {
	// GetAll returns every stored item, or ErrNoItems when the collection
	// holds zero documents.
	GetAll(ctx context.Context) ([]domain.CatalogItem, error)

	// GetByID returns the item with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.CatalogItem, error)

	// Create inserts the item verbatim; id and created_at are expected to be
	// assigned by the caller already.
	Create(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)

	// UpdateName patches only the name plus updated_at, returning the
	// post-update document or ErrNotFound.
	UpdateName(ctx context.Context, newName string, id string) (*domain.CatalogItem, error)

	UpdatePrice(ctx context.Context, newPrice decimal.Decimal, id string) (*domain.CatalogItem, error)

	UpdateDescription(ctx context.Context, newDescription string, id string) (*domain.CatalogItem, error)

	UpdateImages(ctx context.Context, newImages []string, id string) (*domain.CatalogItem, error)

	// Replace swaps name/price/description/images from newItem while keeping
	// the stored id and created_at; updated_at is set to now.
	Replace(ctx context.Context, newItem domain.CatalogItem, id string) (*domain.CatalogItem, error)

	// DeleteByID removes the live document and inserts an archive copy with
	// the archival name suffix. The pre-suffix document is returned even when
	// the archive insert fails.
	DeleteByID(ctx context.Context, id string) (*domain.CatalogItem, error)
}

// StoreCatalogItemRepository is the store-backed implementation.
type StoreCatalogItemRepository struct {
	items   collection[domain.CatalogItem]
	archive collection[domain.CatalogItem]
}

var _ CatalogItemRepository = (*StoreCatalogItemRepository)(nil)

func NewCatalogItemRepository(s *store.Store) *StoreCatalogItemRepository {
	return &StoreCatalogItemRepository{
		items:   store.GetCollection[domain.CatalogItem](s, catalogDatabase, catalogCollection),
		archive: store.GetArchiveCollection[domain.CatalogItem](s, catalogDatabase),
	}
}

func (r *StoreCatalogItemRepository) GetAll(ctx context.Context) ([]domain.CatalogItem, error) {
	items, err := r.items.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func (r *StoreCatalogItemRepository) GetByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	item, err := r.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *StoreCatalogItemRepository) Create(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	return r.items.Insert(ctx, item.ID, item)
}

func (r *StoreCatalogItemRepository) UpdateName(ctx context.Context, newName string, id string) (*domain.CatalogItem, error) {
	return r.updateField(ctx, id, fieldName, newName)
}

func (r *StoreCatalogItemRepository) UpdatePrice(ctx context.Context, newPrice decimal.Decimal, id string) (*domain.CatalogItem, error) {
	return r.updateField(ctx, id, fieldPrice, newPrice)
}

func (r *StoreCatalogItemRepository) UpdateDescription(ctx context.Context, newDescription string, id string) (*domain.CatalogItem, error) {
	return r.updateField(ctx, id, fieldDescription, newDescription)
}

func (r *StoreCatalogItemRepository) UpdateImages(ctx context.Context, newImages []string, id string) (*domain.CatalogItem, error) {
	return r.updateField(ctx, id, fieldImageLocations, newImages)
}

// updateField performs the atomic single-field find-and-modify shared by the
// UpdateX operations.
func (r *StoreCatalogItemRepository) updateField(ctx context.Context, id, field string, value any) (*domain.CatalogItem, error) {
	item, err := r.items.Merge(ctx, id, map[string]any{
		field:          value,
		fieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Replace reads the stored document to recover created_at, then issues the
// atomic replace keyed by id. The read and the replace are two statements,
// so a concurrent replace can interleave between them; that only affects
// which created_at is preserved, never which document is replaced.
func (r *StoreCatalogItemRepository) Replace(ctx context.Context, newItem domain.CatalogItem, id string) (*domain.CatalogItem, error) {
	oldItem, err := r.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if oldItem == nil {
		return nil, ErrNotFound
	}

	curated := domain.CatalogItem{
		ID:             id,
		Name:           newItem.Name,
		Price:          newItem.Price,
		Description:    newItem.Description,
		ImageLocations: newItem.ImageLocations,
		CreatedAt:      oldItem.CreatedAt,
		UpdatedAt:      time.Now().UTC(),
	}

	replaced, err := r.items.Replace(ctx, id, curated)
	if err != nil {
		return nil, err
	}
	if replaced == nil {
		return nil, ErrNotFound
	}
	return replaced, nil
}

func (r *StoreCatalogItemRepository) DeleteByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	item, err := r.items.Take(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	copied := item.ArchiveCopy()
	if _, err := r.archive.Insert(ctx, copied.ID, copied); err != nil {
		// The live document is already gone; the delete is reported as
		// successful even though the archive copy was lost.
		zap.L().Warn("failed to archive deleted catalog item",
			zap.String("id", id), zap.Error(err))
	}

	return item, nil
}
