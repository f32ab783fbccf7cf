package mockapi

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *Server) nextIDLocked() models.ID {
	s.nextID++
	return models.ID(strconv.FormatInt(s.nextID, 10))
}

// --- auth ---

func (s *Server) handleCheckAuth(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return c.JSON(http.StatusOK, models.AuthCheck{Authenticated: false})
	}
	s.mu.Lock()
	acct := s.accounts[username]
	s.mu.Unlock()
	user := acct.user
	return c.JSON(http.StatusOK, models.AuthCheck{Authenticated: true, User: &user})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req models.Credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	if !ok || acct.password != req.Password {
		s.mu.Unlock()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials."})
	}
	sessionID := newToken()
	s.sessions[sessionID] = req.Username
	user := acct.user
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: sessionID, Path: "/", HttpOnly: true})
	return c.JSON(http.StatusOK, models.AuthResponse{User: &user, Message: "Logged in."})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Username]; exists {
		s.mu.Unlock()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username already exists."})
	}
	user := models.User{
		ID:        s.nextIDLocked(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	s.accounts[req.Username] = &account{user: user, password: req.Password}
	sessionID := newToken()
	s.sessions[sessionID] = req.Username
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: sessionID, Path: "/", HttpOnly: true})
	return c.JSON(http.StatusCreated, models.AuthResponse{User: &user, Message: "Registered."})
}

func (s *Server) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out."})
}

func (s *Server) handleGetProfile(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.Lock()
	user := s.accounts[username].user
	s.mu.Unlock()
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req models.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	acct := s.accounts[username]
	if req.Email != "" {
		acct.user.Email = req.Email
	}
	if req.FirstName != "" {
		acct.user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		acct.user.LastName = req.LastName
	}
	user := acct.user
	s.mu.Unlock()
	return c.JSON(http.StatusOK, user)
}

// --- catalog ---

func (s *Server) handleListProducts(c echo.Context) error {
	s.mu.Lock()
	filtered := make([]models.Product, len(s.products))
	copy(filtered, s.products)
	s.mu.Unlock()

	if category := c.QueryParam("category"); category != "" {
		filtered = filterProducts(filtered, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.CategoryName), strings.ToLower(category))
		})
	}
	if minPrice, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil {
		filtered = filterProducts(filtered, func(p models.Product) bool {
			return float64(p.Price) >= minPrice
		})
	}
	if maxPrice, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil {
		filtered = filterProducts(filtered, func(p models.Product) bool {
			return float64(p.Price) <= maxPrice
		})
	}
	if search := strings.ToLower(c.QueryParam("search")); search != "" {
		filtered = filterProducts(filtered, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), search) ||
				strings.Contains(strings.ToLower(p.Description), search)
		})
	}

	switch c.QueryParam("sort_by") {
	case "price_low":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price_high":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case "rating":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	}

	pageSize := s.cfg.PageSize
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		pageSize = v
	}

	// Small result sets come back as a plain array; anything larger gets
	// the paginated envelope, so clients see both shapes in practice.
	if len(filtered) <= pageSize {
		return c.JSON(http.StatusOK, filtered)
	}

	page := 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": filtered[start:end],
		"count":   len(filtered),
	})
}

func (s *Server) handleFeaturedProducts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	featured := make([]models.Product, 0, 8)
	for _, p := range s.products {
		if p.Rating >= 4.0 {
			featured = append(featured, p)
		}
		if len(featured) == 8 {
			break
		}
	}
	return c.JSON(http.StatusOK, featured)
}

func (s *Server) handleRelatedProducts(c echo.Context) error {
	productID := models.ID(c.QueryParam("product_id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.findProductLocked(productID)
	if !ok {
		return c.JSON(http.StatusOK, []models.Product{})
	}
	related := make([]models.Product, 0, 4)
	for _, p := range s.products {
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
		}
		if len(related) == 4 {
			break
		}
	}
	return c.JSON(http.StatusOK, related)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	s.mu.Lock()
	product, ok := s.findProductLocked(models.ID(c.Param("id")))
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found."})
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleAddReview(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	productID := models.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.findProductLocked(productID); !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found."})
	}
	review := models.Review{
		ID:        s.nextIDLocked(),
		User:      s.accounts[username].user.ID,
		UserName:  username,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	s.reviews[productID] = append(s.reviews[productID], review)
	return c.JSON(http.StatusCreated, review)
}

func (s *Server) handleListCategories(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.categories)
}

func (s *Server) handleGetCategory(c echo.Context) error {
	id := models.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, category := range s.categories {
		if category.ID == id {
			return c.JSON(http.StatusOK, category)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found."})
}

func (s *Server) handleCategoryProducts(c echo.Context) error {
	id := models.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Category == id {
			products = append(products, p)
		}
	}
	return c.JSON(http.StatusOK, products)
}

// --- cart ---

func (s *Server) handleGetCart(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[username]
	if lines == nil {
		lines = []models.CartLine{}
	}
	return c.JSON(http.StatusOK, lines)
}

func (s *Server) handleAddToCart(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req models.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product, found := s.findProductLocked(req.Product)
	if !found {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown product."})
	}

	lines := s.carts[username]
	for i := range lines {
		if lines[i].Product != nil && lines[i].Product.ID == req.Product {
			quantity := lines[i].Quantity + req.Quantity
			if quantity > 10 {
				quantity = 10
			}
			lines[i].Quantity = quantity
			return c.JSON(http.StatusOK, lines[i])
		}
	}

	line := models.CartLine{
		ID:        s.nextIDLocked(),
		Product:   &product,
		Quantity:  req.Quantity,
		CreatedAt: time.Now().UTC(),
	}
	s.carts[username] = append(lines, line)
	return c.JSON(http.StatusCreated, line)
}

func (s *Server) handleUpdateQuantity(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req models.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	lineID := models.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[username]
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = req.Quantity
			return c.JSON(http.StatusOK, lines[i])
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found."})
}

func (s *Server) handleRemoveCartLine(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	lineID := models.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[username]
	for i := range lines {
		if lines[i].ID == lineID {
			s.carts[username] = append(lines[:i], lines[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found."})
}

func (s *Server) handleCartTotal(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	total := models.CartTotal{}
	for _, line := range s.carts[username] {
		total.TotalItems += line.Quantity
		total.TotalPrice += line.LineTotal()
	}
	return c.JSON(http.StatusOK, total)
}

// --- wishlist ---

func (s *Server) handleGetWishlist(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.wishlists[username]
	if items == nil {
		items = []models.WishlistItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleAddToWishlist(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req struct {
		Product models.ID `json:"product" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.addWishlistItemLocked(username, req.Product)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) handleToggleWishlist(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req struct {
		ProductID models.ID `json:"product_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.wishlists[username] {
		if item.Product != nil && item.Product.ID == req.ProductID {
			s.wishlists[username] = append(s.wishlists[username][:i], s.wishlists[username][i+1:]...)
			return c.JSON(http.StatusOK, echo.Map{"message": "Removed from wishlist."})
		}
	}
	item, err := s.addWishlistItemLocked(username, req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) handleRemoveFromWishlist(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	itemID := models.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.wishlists[username]
	for i := range items {
		if items[i].ID == itemID {
			s.wishlists[username] = append(items[:i], items[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found."})
}

// --- orders ---

func (s *Server) handleListOrders(c echo.Context) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[username]
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) handleCreateOrder(c echo.Context) error {
	return s.createOrder(c, false)
}

func (s *Server) handleCreateOrderFromCart(c echo.Context) error {
	return s.createOrder(c, true)
}

func (s *Server) createOrder(c echo.Context, fromCart bool) error {
	username, ok := s.currentUsername(c)
	if !ok {
		return unauthorized(c)
	}
	var req models.OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order := models.Order{
		ID:        s.nextIDLocked(),
		Status:    "pending",
		Items:     []models.OrderItem{},
		CreatedAt: time.Now().UTC(),
	}
	if fromCart {
		lines := s.carts[username]
		if len(lines) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cart is empty."})
		}
		for _, line := range lines {
			item := models.OrderItem{
				ID:       s.nextIDLocked(),
				Product:  line.Product,
				Quantity: line.Quantity,
			}
			if line.Product != nil {
				item.Price = line.Product.Price
			}
			order.Items = append(order.Items, item)
			order.Total += line.LineTotal()
		}
		s.carts[username] = nil
	}
	s.orders[username] = append(s.orders[username], order)
	return c.JSON(http.StatusCreated, order)
}

// --- helpers ---

func (s *Server) findProductLocked(id models.ID) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Server) addWishlistItemLocked(username string, productID models.ID) (models.WishlistItem, error) {
	product, found := s.findProductLocked(productID)
	if !found {
		return models.WishlistItem{}, errors.New("Unknown product.")
	}
	item := models.WishlistItem{
		ID:        s.nextIDLocked(),
		Product:   &product,
		CreatedAt: time.Now().UTC(),
	}
	s.wishlists[username] = append(s.wishlists[username], item)
	return item, nil
}

func filterProducts(products []models.Product, keep func(models.Product) bool) []models.Product {
	filtered := products[:0]
	for _, p := range products {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
