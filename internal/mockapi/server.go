// Package mockapi is an in-memory double of the storefront backend REST
// contract, used by package tests and the mock-api command. It mimics the
// real backend's cookie session and CSRF behavior so the client can be
// exercised end to end without a running backend.
package mockapi

import (
	"context"
	"errors"
	"net/http"
	"sync"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

const (
	sessionCookie = "sessionid"
	csrfCookie    = "csrftoken"
	csrfHeader    = "X-CSRFToken"
)

type account struct {
	user     models.User
	password string
}

// Server holds the echo instance and all mock state. State is per-process
// and per-user; nothing survives a restart, which matches its role as a
// test double.
type Server struct {
	echo *echo.Echo
	cfg  *config.MockAPIConfig

	mu         sync.Mutex
	nextID     int64
	accounts   map[string]*account          // username -> account
	sessions   map[string]string            // session id -> username
	carts      map[string][]models.CartLine // username -> lines
	wishlists  map[string][]models.WishlistItem
	orders     map[string][]models.Order
	reviews    map[models.ID][]models.Review
	products   []models.Product
	categories []models.Category
}

func NewServer(cfg *config.MockAPIConfig) *Server {
	s := &Server{
		cfg:        cfg,
		nextID:     1000,
		accounts:   make(map[string]*account),
		sessions:   make(map[string]string),
		carts:      make(map[string][]models.CartLine),
		wishlists:  make(map[string][]models.WishlistItem),
		orders:     make(map[string][]models.Order),
		reviews:    make(map[models.ID][]models.Review),
		products:   seedProducts(),
		categories: seedCategories(),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))
	e.Use(s.issueCSRFCookie)
	e.Use(s.enforceCSRF)

	api := e.Group("/api")

	api.GET("/auth/check/", s.handleCheckAuth)
	api.POST("/auth/login/", s.handleLogin)
	api.POST("/auth/register/", s.handleRegister)
	api.POST("/auth/logout/", s.handleLogout)
	api.GET("/profile/", s.handleGetProfile)
	api.PUT("/profile/", s.handleUpdateProfile)

	api.GET("/products/", s.handleListProducts)
	api.GET("/products/featured/", s.handleFeaturedProducts)
	api.GET("/products/related/", s.handleRelatedProducts)
	api.GET("/products/:id/", s.handleGetProduct)
	api.POST("/products/:id/add_review/", s.handleAddReview)

	api.GET("/categories/", s.handleListCategories)
	api.GET("/categories/:id/", s.handleGetCategory)
	api.GET("/categories/:id/products/", s.handleCategoryProducts)

	api.GET("/cart/", s.handleGetCart)
	api.POST("/cart/", s.handleAddToCart)
	api.GET("/cart/total/", s.handleCartTotal)
	api.POST("/cart/:id/update_quantity/", s.handleUpdateQuantity)
	api.DELETE("/cart/:id/", s.handleRemoveCartLine)

	api.GET("/wishlist/", s.handleGetWishlist)
	api.POST("/wishlist/", s.handleAddToWishlist)
	api.POST("/wishlist/toggle/", s.handleToggleWishlist)
	api.DELETE("/wishlist/:id/", s.handleRemoveFromWishlist)

	api.GET("/orders/", s.handleListOrders)
	api.POST("/orders/", s.handleCreateOrder)
	api.POST("/orders/create_from_cart/", s.handleCreateOrderFromCart)

	s.echo = e
	return s
}

// Handler exposes the underlying handler so tests can mount the mock on an
// httptest server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// StartServer runs the mock backend under the fx lifecycle.
func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	s *Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting mock API server", "addr", conf.MockAPI.Addr)
				if err := s.echo.Start(conf.MockAPI.Addr); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.echo.Shutdown(ctx)
		},
	})
}

// issueCSRFCookie makes sure every client ends up with a csrftoken cookie,
// the way the real backend does on any safe request.
func (s *Server) issueCSRFCookie(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := c.Cookie(csrfCookie); err != nil {
			token := newToken()
			c.SetCookie(&http.Cookie{
				Name:  csrfCookie,
				Value: token,
				Path:  "/",
			})
			// Make the token visible to the CSRF check on this same
			// request, mirroring cookie semantics of a second round trip.
			c.Request().AddCookie(&http.Cookie{Name: csrfCookie, Value: token})
		}
		return next(c)
	}
}

// enforceCSRF rejects unsafe methods whose X-CSRFToken header does not
// match the csrftoken cookie.
func (s *Server) enforceCSRF(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch c.Request().Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			cookie, err := c.Cookie(csrfCookie)
			header := c.Request().Header.Get(csrfHeader)
			if err != nil || header == "" || header != cookie.Value {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "CSRF token missing or incorrect.",
				})
			}
		}
		return next(c)
	}
}

// currentUsername resolves the session cookie. Second return is false for
// guests.
func (s *Server) currentUsername(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.sessions[cookie.Value]
	return username, ok
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{
		"error": "Authentication credentials were not provided.",
	})
}
