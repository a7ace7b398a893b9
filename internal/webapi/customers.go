package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
)

func (s *WebServer) createCustomer(c echo.Context) error {
	var dto domain.CustomerCreate
	if err := c.Bind(&dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	if err := c.Validate(dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Customer payload invalid", err.Error())
	}

	created, err := s.app.Customers().Create(c.Request().Context(), dto.Customer())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create customer", err.Error())
	}

	zap.L().Info("created customer", zap.String("id", created.ID))
	return ok(c, created.AsGet())
}

// The customer read paths are fail-fast stubs in the repository; the recover
// middleware turns the panic into a 500.
func (s *WebServer) listCustomers(c echo.Context) error {
	customers, err := s.app.Customers().GetAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query customers", err.Error())
	}

	dtos := make([]domain.CustomerGet, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, customer.AsGet())
	}
	return ok(c, dtos)
}

func (s *WebServer) getCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}

	customer, err := s.app.Customers().GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query customer", err.Error())
	}
	return ok(c, customer.AsGet())
}

func (s *WebServer) getAPIVersion(c echo.Context) error {
	return ok(c, echo.Map{"version": s.app.Config().System.Version})
}
