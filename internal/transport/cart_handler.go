package transport

import (
	"net/http"
	"strconv"

	"bmg-store/internal/domain"
	"bmg-store/internal/middleware"
	"bmg-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for session carts
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Post("/", h.AddItem)
		// Registered before /{id} so "session" is never parsed as an item id
		r.Delete("/session/{sessionId}", h.ClearCart)
		r.Get("/{sessionId}", h.ListItems)
		r.Delete("/{id}", h.RemoveItem)
	})
}

// ListItems returns the session's cart lines joined with their products
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	lines, err := h.cartService.ListItems(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, r, h.logger, "list cart", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, nonNil(lines))
}

// AddItem appends a line to a session's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddCartItemInput
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	item, err := h.cartService.AddItem(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.logger, "add cart item", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}

// RemoveItem deletes one cart line by id
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, "remove cart item", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ClearCart empties a session's cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	if err := h.cartService.ClearCart(r.Context(), sessionID); err != nil {
		respondServiceError(w, r, h.logger, "clear cart", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
