package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/internal/service"
	"github.com/shopnest/marketplace/internal/storage"
	"github.com/shopnest/marketplace/pkg/httputil"
	"github.com/shopnest/marketplace/pkg/middleware"
	"github.com/shopnest/marketplace/pkg/pagination"
)

// maxUploadSize bounds product image uploads.
const maxUploadSize = 10 << 20

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Response envelopes ---

type listProductsResponse struct {
	Message    string            `json:"message"`
	Products   []domain.Product  `json:"products"`
	Pagination pagination.Result `json:"pagination"`
}

type productResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type productDetailResponse struct {
	Message string                `json:"message"`
	Product *domain.ProductDetail `json:"product"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Helpers ---

// listQueryFromRequest extracts the raw listing parameters. All of them are
// optional; normalization and silent recovery happen in the service.
func listQueryFromRequest(r *http.Request) service.ListQuery {
	return service.ListQuery{
		Page:   r.URL.Query().Get("page"),
		Filter: r.URL.Query().Get("filter"),
		Search: r.URL.Query().Get("query"),
	}
}

// parsePathID parses a numeric path parameter. The boolean is false when the
// value is missing or not a positive integer; the caller has already written
// the response in that case.
func parsePathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Message: "invalid " + label,
		})
		return 0, false
	}
	return id, true
}

// vendorFromContext extracts the authenticated vendor's ID. The auth
// middleware guards these routes, so a miss means a wiring bug, not a
// client mistake; it still terminates the request.
func vendorFromContext(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vendorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorBody{
			Message: "missing or invalid authorization token",
		})
		return 0, false
	}
	return vendorID, true
}

// imageFromForm extracts the uploaded image from a parsed multipart form.
// A missing file yields (nil, nil, nil); the validation policy decides
// whether that is acceptable.
func imageFromForm(r *http.Request) (*storage.UploadInput, func(), error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &storage.UploadInput{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	}

	return input, func() { _ = file.Close() }, nil
}

// submissionFromForm collects the product form fields.
func submissionFromForm(r *http.Request) service.ProductSubmission {
	return service.ProductSubmission{
		Title:      r.FormValue("title"),
		Price:      r.FormValue("price"),
		ShopID:     r.FormValue("shopId"),
		CategoryID: r.FormValue("categoryId"),
	}
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, page, err := h.service.ListProducts(r.Context(), listQueryFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listProductsResponse{
		Message:    "products fetched",
		Products:   products,
		Pagination: page,
	})
}

// ListProductsByCategory handles GET /api/v1/categories/{categoryId}/products.
func (h *ProductHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parsePathID(w, r, "categoryId", "category id")
	if !ok {
		return
	}

	products, page, err := h.service.ListProductsByCategory(r.Context(), categoryID, listQueryFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listProductsResponse{
		Message:    "products fetched",
		Products:   products,
		Pagination: page,
	})
}

// GetProduct handles GET /api/v1/products/{productId}. The route sits behind
// OptionalAuth: an authenticated customer gets a personalized canPostReview,
// anonymous requests always get false.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parsePathID(w, r, "productId", "product id")
	if !ok {
		return
	}

	var customerID *int64
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		customerID = &id
	}

	detail, err := h.service.GetProductDetail(r.Context(), productID, customerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, productDetailResponse{
		Message: "product fetched",
		Product: detail,
	})
}

// CreateProduct handles POST /api/v1/products (multipart/form-data).
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := vendorFromContext(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Message: "failed to parse multipart form",
		})
		return
	}

	image, closeImage, err := imageFromForm(r)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Message: "failed to read uploaded image",
		})
		return
	}
	defer closeImage()

	product, err := h.service.CreateProduct(r.Context(), vendorID, submissionFromForm(r), image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, productResponse{
		Message: "product created",
		Product: product,
	})
}

// UpdateProduct handles PUT /api/v1/products/{productId} (multipart/form-data,
// image optional).
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := vendorFromContext(w, r)
	if !ok {
		return
	}

	productID, ok := parsePathID(w, r, "productId", "product id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Message: "failed to parse multipart form",
		})
		return
	}

	image, closeImage, err := imageFromForm(r)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Message: "failed to read uploaded image",
		})
		return
	}
	defer closeImage()

	product, err := h.service.UpdateProduct(r.Context(), vendorID, productID, submissionFromForm(r), image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, productResponse{
		Message: "product updated",
		Product: product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/{productId}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := vendorFromContext(w, r)
	if !ok {
		return
	}

	productID, ok := parsePathID(w, r, "productId", "product id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), vendorID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "product deleted"})
}
