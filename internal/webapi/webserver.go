// Package webapi wires the HTTP controllers over the repositories and the
// image reconciler. Controllers translate requests to DTOs, call the
// repositories and translate results back; all business invariants live
// below this layer.
package webapi

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/andreishark/api-backend-ecommerce/internal/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type WebServer struct {
	app  app.AppContext
	root *echo.Echo
}

// NewServer builds the echo server, middleware stack and routes.
func NewServer(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	s := &WebServer{app: appCtx, root: e}
	s.registerRoutes()
	return s
}

func (s *WebServer) registerRoutes() {
	cfg := s.app.Config()

	// Uploaded images are served straight from the image root.
	s.root.Static(cfg.Web.ImagePrefix, cfg.Web.ImageDir)

	api := s.root.Group("/api")

	catalog := api.Group("/catalog")
	catalog.GET("/get_products", s.listCatalogItems)
	catalog.GET("/get_product/:id", s.getCatalogItem)
	catalog.POST("/insert_product", s.insertCatalogItem)
	catalog.PATCH("/update_item/:id", s.updateCatalogItem)
	catalog.PUT("/update_item_name/:id", s.updateCatalogItemName)
	catalog.PUT("/update_item_price/:id", s.updateCatalogItemPrice)
	catalog.PUT("/update_item_description/:id", s.updateCatalogItemDescription)
	catalog.PUT("/update_item_images/:id", s.updateCatalogItemImages)
	catalog.DELETE("/delete_item/:id", s.deleteCatalogItem)

	users := api.Group("/users")
	users.POST("/register", s.registerUser)
	users.POST("/login", s.loginUser)
	protected := users.Group("")
	protected.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
	}))
	protected.GET("/by_email", s.getUserByEmail)
	protected.GET("/:id", s.getUser)

	customers := api.Group("/customers")
	customers.POST("", s.createCustomer)
	customers.GET("", s.listCustomers)
	customers.GET("/:id", s.getCustomer)

	api.GET("/config/version", s.getAPIVersion)
}

func (s *WebServer) Start() error {
	cfg := s.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("Starting web server on %s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// jsonSerializer routes echo's JSON encoding through json-iterator.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	return json.NewDecoder(c.Request().Body).Decode(i)
}
