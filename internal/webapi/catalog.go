package webapi

import (
	"io"
	"net/http"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/images"
	"github.com/andreishark/api-backend-ecommerce/internal/repository"
)

func (s *WebServer) listCatalogItems(c echo.Context) error {
	items, err := s.app.CatalogItems().GetAll(c.Request().Context())
	if errors.Is(err, repository.ErrNoItems) {
		return fail(c, http.StatusNotFound, "NO_ITEMS", "There aren't any items in the catalog", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query catalog items", err.Error())
	}

	dtos := make([]domain.CatalogItemGet, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, item.AsGet())
	}
	return ok(c, dtos)
}

func (s *WebServer) getCatalogItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}

	item, err := s.app.CatalogItems().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query item", err.Error())
	}
	return ok(c, item.AsGet())
}

// insertCatalogItem creates an item from a multipart form carrying the
// name/price/description fields and at least one `images` file. Images are
// written to disk before the document is inserted; files already written are
// not removed when the insert fails.
func (s *WebServer) insertCatalogItem(c echo.Context) error {
	dto, err := bindCatalogItemCreate(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	if err := c.Validate(dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Item payload invalid", err.Error())
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read form files", err.Error())
	}
	files := form.File["images"]
	if len(files) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "At least one image is required", nil)
	}

	item := dto.Item(nil)
	refs, err := s.app.Images().WriteImages(item.ID, images.FromMultipart(files))
	if err != nil {
		zap.L().Error("failed to write item images", zap.String("id", item.ID), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "FILESYSTEM_ERROR", "Failed to store images", err.Error())
	}
	item.ImageLocations = refs

	created, err := s.app.CatalogItems().Create(c.Request().Context(), item)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create item", err.Error())
	}

	zap.L().Info("created catalog item", zap.String("id", created.ID), zap.String("name", created.Name))
	return ok(c, created.AsGet())
}

// updateCatalogItem applies a JSON-Patch document against the item's create
// shape and resolves it to a full replace. The multipart variant carries the
// patch in a `patch` field together with the image add/remove batch; the
// image set is reconciled first, then the replace persists both.
func (s *WebServer) updateCatalogItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}

	oldItem, err := s.app.CatalogItems().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query item", err.Error())
	}

	workingRefs := oldItem.ImageLocations
	var patchData []byte

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read form", err.Error())
		}

		addMode := cast.ToBool(c.FormValue("add_images"))
		workingRefs, err = s.app.Images().Reconcile(id, workingRefs, addMode,
			images.FromMultipart(form.File["images"]), form.Value["delete_images"])
		if errors.Is(err, images.ErrUnmatchedImage) {
			return fail(c, http.StatusBadRequest, "INVALID_IMAGE_SET", "Delete request references an unknown image", err.Error())
		}
		if err != nil {
			return fail(c, http.StatusInternalServerError, "FILESYSTEM_ERROR", "Failed to reconcile images", err.Error())
		}

		patchData = []byte(c.FormValue("patch"))
	} else {
		patchData, err = io.ReadAll(c.Request().Body)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read patch document", err.Error())
		}
	}

	dto := oldItem.AsCreate()
	if len(patchData) > 0 {
		dto, err = applyCreatePatch(dto, patchData)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_PATCH", "Patch document could not be applied", err.Error())
		}
		if err := c.Validate(dto); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_PATCH", "Patched item invalid", err.Error())
		}
	}

	replaced, err := s.app.CatalogItems().Replace(c.Request().Context(), dto.ItemWithID(id, workingRefs), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to replace item", err.Error())
	}

	zap.L().Info("replaced catalog item", zap.String("id", id))
	return ok(c, replaced.AsGet())
}

func (s *WebServer) updateCatalogItemName(c echo.Context) error {
	return s.updateSingleField(c, func(ctx echo.Context, id string) (*domain.CatalogItem, error) {
		newName := strings.TrimSpace(c.FormValue("name"))
		if newName == "" {
			return nil, errInvalidValue
		}
		return s.app.CatalogItems().UpdateName(ctx.Request().Context(), newName, id)
	})
}

func (s *WebServer) updateCatalogItemPrice(c echo.Context) error {
	return s.updateSingleField(c, func(ctx echo.Context, id string) (*domain.CatalogItem, error) {
		newPrice, err := decimal.NewFromString(c.FormValue("price"))
		if err != nil {
			return nil, errInvalidValue
		}
		return s.app.CatalogItems().UpdatePrice(ctx.Request().Context(), newPrice, id)
	})
}

func (s *WebServer) updateCatalogItemDescription(c echo.Context) error {
	return s.updateSingleField(c, func(ctx echo.Context, id string) (*domain.CatalogItem, error) {
		newDescription := c.FormValue("description")
		if newDescription == "" {
			return nil, errInvalidValue
		}
		return s.app.CatalogItems().UpdateDescription(ctx.Request().Context(), newDescription, id)
	})
}

// updateCatalogItemImages runs an image add/remove batch and persists the
// reconciled reference list through the single-field image update.
func (s *WebServer) updateCatalogItemImages(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}

	item, err := s.app.CatalogItems().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query item", err.Error())
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read form", err.Error())
	}

	addMode := cast.ToBool(c.FormValue("add_images"))
	refs, err := s.app.Images().Reconcile(id, item.ImageLocations, addMode,
		images.FromMultipart(form.File["images"]), form.Value["delete_images"])
	if errors.Is(err, images.ErrUnmatchedImage) {
		return fail(c, http.StatusBadRequest, "INVALID_IMAGE_SET", "Delete request references an unknown image", err.Error())
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "FILESYSTEM_ERROR", "Failed to reconcile images", err.Error())
	}

	updated, err := s.app.CatalogItems().UpdateImages(c.Request().Context(), refs, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to update item images", err.Error())
	}
	return ok(c, updated.AsGet())
}

func (s *WebServer) deleteCatalogItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}

	item, err := s.app.CatalogItems().DeleteByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to delete item", err.Error())
	}

	zap.L().Info("deleted and archived catalog item", zap.String("id", id))
	return ok(c, item.AsGet())
}

var errInvalidValue = errors.New("webapi: missing or malformed field value")

// updateSingleField shares the id parsing and error mapping of the
// single-field update endpoints.
func (s *WebServer) updateSingleField(c echo.Context, update func(echo.Context, string) (*domain.CatalogItem, error)) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}

	item, err := update(c, id)
	if errors.Is(err, errInvalidValue) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing or malformed field value", nil)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to update item", err.Error())
	}
	return ok(c, item.AsGet())
}

// bindCatalogItemCreate reads the create fields from the form by hand: the
// price is an exact decimal and must not pass through a float.
func bindCatalogItemCreate(c echo.Context) (domain.CatalogItemCreate, error) {
	var dto domain.CatalogItemCreate
	dto.Name = strings.TrimSpace(c.FormValue("name"))
	dto.Description = c.FormValue("description")

	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return dto, errors.Wrap(err, "invalid price")
	}
	dto.Price = price
	return dto, nil
}

// applyCreatePatch applies an RFC 6902 document to the create-shaped DTO.
func applyCreatePatch(dto domain.CatalogItemCreate, patchData []byte) (domain.CatalogItemCreate, error) {
	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return dto, err
	}

	doc, err := json.Marshal(dto)
	if err != nil {
		return dto, err
	}
	patched, err := patch.Apply(doc)
	if err != nil {
		return dto, err
	}

	var out domain.CatalogItemCreate
	if err := json.Unmarshal(patched, &out); err != nil {
		return dto, err
	}
	return out, nil
}
