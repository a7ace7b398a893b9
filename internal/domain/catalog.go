package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArchiveSuffix is appended to the name of a catalog item when it is moved
// to the archive collection on delete.
const ArchiveSuffix = "_archived"

// CatalogItem is the central catalog entity. ID and CreatedAt are assigned
// once at creation and never change afterwards; UpdatedAt is refreshed by
// every mutating repository operation.
type CatalogItem struct {
	ID             string          `json:"id" form:"id"`
	Name           string          `json:"name" form:"name"`
	Price          decimal.Decimal `json:"price" form:"price"`
	Description    string          `json:"description" form:"description"`
	ImageLocations []string        `json:"image_locations" form:"image_locations"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CatalogItemCreate is the create/patch payload shape. Patch documents are
// applied against this shape before being resolved to a full replace.
type CatalogItemCreate struct {
	Name        string          `json:"name" form:"name" validate:"required,min=1,max=200"`
	Price       decimal.Decimal `json:"price" form:"price" validate:"required"`
	Description string          `json:"description" form:"description" validate:"required"`
}

// CatalogItemGet is the response shape, timestamps omitted.
type CatalogItemGet struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	ImageLocations []string        `json:"image_locations"`
}

// Item builds a new catalog item from the payload, assigning a fresh id and
// creation timestamps.
func (d CatalogItemCreate) Item(imageLocations []string) CatalogItem {
	now := time.Now().UTC()
	return CatalogItem{
		ID:             uuid.NewString(),
		Name:           d.Name,
		Price:          d.Price,
		Description:    d.Description,
		ImageLocations: imageLocations,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ItemWithID builds a catalog item from the payload keeping the given id.
// Timestamps are set to now; Replace restores the original created_at from
// the stored document.
func (d CatalogItemCreate) ItemWithID(id string, imageLocations []string) CatalogItem {
	item := d.Item(imageLocations)
	item.ID = id
	return item
}

// AsCreate projects the item back to its create shape.
func (it CatalogItem) AsCreate() CatalogItemCreate {
	return CatalogItemCreate{
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
	}
}

// AsGet projects the item to its response shape.
func (it CatalogItem) AsGet() CatalogItemGet {
	return CatalogItemGet{
		ID:             it.ID,
		Name:           it.Name,
		Price:          it.Price,
		Description:    it.Description,
		ImageLocations: it.ImageLocations,
	}
}

// ArchiveCopy returns the document stored in the archive collection when the
// item is deleted: identical fields with the archival name suffix.
func (it CatalogItem) ArchiveCopy() CatalogItem {
	copied := it
	copied.Name = it.Name + ArchiveSuffix
	return copied
}
