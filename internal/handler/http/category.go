package http

import (
	"log/slog"
	"net/http"

	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/internal/service"
	"github.com/shopnest/marketplace/pkg/httputil"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

type listCategoriesResponse struct {
	Message    string            `json:"message"`
	Categories []domain.Category `json:"categories"`
}

// ListCategories handles GET /api/v1/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listCategoriesResponse{
		Message:    "categories fetched",
		Categories: categories,
	})
}
