package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopnest/marketplace/internal/auth"
	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/internal/event"
	"github.com/shopnest/marketplace/internal/repository"
	"github.com/shopnest/marketplace/internal/service"
	"github.com/shopnest/marketplace/internal/storage"
	apperrors "github.com/shopnest/marketplace/pkg/errors"
	"github.com/shopnest/marketplace/pkg/health"
	pkgkafka "github.com/shopnest/marketplace/pkg/kafka"
	"github.com/shopnest/marketplace/pkg/middleware"
)

// Ensure interfaces are satisfied at compile time.
var _ repository.ProductRepository = (*mockProductRepository)(nil)
var _ storage.Storage = (*mockStorage)(nil)

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByShopAndID(ctx context.Context, id, shopID int64) (*domain.Product, error) {
	args := m.Called(ctx, id, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) FindByShopAndTitle(ctx context.Context, shopID int64, title string) (*domain.Product, error) {
	args := m.Called(ctx, shopID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockShopRepository struct {
	mock.Mock
}

func (m *mockShopRepository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *mockShopRepository) GetByVendorAndID(ctx context.Context, vendorID, shopID int64) (*domain.Shop, error) {
	args := m.Called(ctx, vendorID, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*domain.Review, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) ListIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockOrderRepository) ItemExists(ctx context.Context, orderIDs []int64, productID int64) (bool, error) {
	args := m.Called(ctx, orderIDs, productID)
	return args.Bool(0), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// --- Test Helpers ---

type routerMocks struct {
	products   *mockProductRepository
	shops      *mockShopRepository
	categories *mockCategoryRepository
	reviews    *mockReviewRepository
	orders     *mockOrderRepository
	storage    *mockStorage
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

var testJWT = auth.NewJWTManager("test-secret", time.Hour)

func newTestRouter(t *testing.T) (http.Handler, *routerMocks) {
	t.Helper()

	m := &routerMocks{
		products:   new(mockProductRepository),
		shops:      new(mockShopRepository),
		categories: new(mockCategoryRepository),
		reviews:    new(mockReviewRepository),
		orders:     new(mockOrderRepository),
		storage:    new(mockStorage),
	}

	logger := testLogger()
	producer := testEventProducer()

	products := service.NewProductService(
		m.products, m.shops, m.categories, m.reviews, m.orders,
		m.storage, producer, logger,
	)
	reviews := service.NewReviewService(m.products, m.reviews, m.orders, producer, logger)
	categories := service.NewCategoryService(m.categories)

	router := NewRouter(RouterDeps{
		Products:      products,
		Reviews:       reviews,
		Categories:    categories,
		TokenValidate: testJWT.TokenValidator(),
		Health:        health.NewHandler(),
		CORS:          middleware.DefaultCORSConfig(),
		Logger:        logger,
	})

	return router, m
}

func bearerToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := testJWT.GenerateAccessToken(userID, "user@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func sampleProduct() *domain.Product {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:         1,
		Title:      "Walnut Desk",
		Price:      14999,
		Image:      "abc.jpg",
		ShopID:     7,
		CategoryID: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// productForm builds a multipart form body for create/edit requests. An empty
// imageName omits the file part.
func productForm(imageName string, fields map[string]string) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	if imageName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageName))
		h.Set("Content-Type", "image/jpeg")
		part, _ := writer.CreatePart(h)
		_, _ = part.Write([]byte("fake image data"))
	}

	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}

	_ = writer.Close()
	return body, writer.FormDataContentType()
}

func validProductFields() map[string]string {
	return map[string]string{
		"title":      "Walnut Desk",
		"price":      "14999",
		"shopId":     "7",
		"categoryId": "3",
	}
}

// ============================================================================
// GET /api/v1/products
// ============================================================================

func TestListProducts_OK(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.Offset == 10 && f.Limit == 10
	})).Return([]domain.Product{*sampleProduct()}, 25, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "products fetched", body["message"])

	pg := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pg["page"])
	assert.Equal(t, float64(25), pg["totalCount"])
	assert.Equal(t, float64(3), pg["totalPages"])
	assert.Equal(t, float64(10), pg["pageSize"])

	products := body["products"].([]any)
	require.Len(t, products, 1)
	first := products[0].(map[string]any)
	assert.Equal(t, "Walnut Desk", first["title"])
	assert.Equal(t, float64(7), first["shopId"])
}

func TestListProducts_MalformedFilterIgnored(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.ShopID == nil && f.CategoryID == nil && f.Search == nil
	})).Return([]domain.Product{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?filter=%7Bnot-json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.products.AssertExpectations(t)
}

// ============================================================================
// GET /api/v1/categories/{categoryId}/products
// ============================================================================

func TestListProductsByCategory_CategoryMissing(t *testing.T) {
	router, m := newTestRouter(t)

	m.categories.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/99/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "category does not exist", body["message"])
	m.products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListProductsByCategory_OK(t *testing.T) {
	router, m := newTestRouter(t)

	m.categories.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Category{ID: 3, Name: "Furniture"}, nil)
	m.products.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == 3
	})).Return([]domain.Product{*sampleProduct()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/3/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.products.AssertExpectations(t)
}

// ============================================================================
// GET /api/v1/products/{productId}
// ============================================================================

func TestGetProduct_AnonymousCannotPostReview(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("GetByID", mock.Anything, int64(1)).Return(sampleProduct(), nil)
	m.shops.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Shop{ID: 7, Name: "Oak & Iron", VendorID: 42}, nil)
	m.reviews.On("ListByProduct", mock.Anything, int64(1)).Return([]domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	product := body["product"].(map[string]any)
	assert.Equal(t, false, product["canPostReview"])
	assert.Equal(t, "Oak & Iron", product["shop"].(map[string]any)["name"])
}

func TestGetProduct_AuthenticatedPurchaser(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("GetByID", mock.Anything, int64(1)).Return(sampleProduct(), nil)
	m.shops.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Shop{ID: 7, Name: "Oak & Iron", VendorID: 42}, nil)
	m.reviews.On("ListByProduct", mock.Anything, int64(1)).Return([]domain.Review{}, nil)
	m.reviews.On("GetByCustomerAndProduct", mock.Anything, int64(5), int64(1)).
		Return(nil, apperrors.ErrNotFound)
	m.orders.On("ListIDsByCustomer", mock.Anything, int64(5)).Return([]int64{100}, nil)
	m.orders.On("ItemExists", mock.Anything, []int64{100}, int64(1)).Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil)
	req.Header.Set("Authorization", bearerToken(t, 5, middleware.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	product := body["product"].(map[string]any)
	assert.Equal(t, true, product["canPostReview"])
}

func TestGetProduct_NotFound(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "product does not exist", body["message"])
}

// ============================================================================
// POST /api/v1/products
// ============================================================================

func TestCreateProduct_Success(t *testing.T) {
	router, m := newTestRouter(t)

	m.shops.On("GetByVendorAndID", mock.Anything, int64(42), int64(7)).
		Return(&domain.Shop{ID: 7, VendorID: 42}, nil)
	m.products.On("FindByShopAndTitle", mock.Anything, int64(7), "Walnut Desk").
		Return(nil, apperrors.ErrNotFound)
	m.storage.On("Upload", mock.Anything, mock.AnythingOfType("*storage.UploadInput")).
		Return(&storage.UploadResult{Key: "abc.jpg", URL: "/uploads/abc.jpg"}, nil)
	m.products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Product).ID = 1
		}).
		Return(nil)

	body, contentType := productForm("desk.jpg", validProductFields())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "product created", resp["message"])
	product := resp["product"].(map[string]any)
	assert.Equal(t, float64(1), product["id"])
	assert.Equal(t, "abc.jpg", product["image"])
	m.products.AssertExpectations(t)
}

func TestCreateProduct_NoToken(t *testing.T) {
	router, m := newTestRouter(t)

	body, contentType := productForm("desk.jpg", validProductFields())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	m.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_CustomerForbidden(t *testing.T) {
	router, m := newTestRouter(t)

	body, contentType := productForm("desk.jpg", validProductFields())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, 5, middleware.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.shops.AssertNotCalled(t, "GetByVendorAndID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProduct_ValidationReason(t *testing.T) {
	router, _ := newTestRouter(t)

	fields := validProductFields()
	fields["shopId"] = "seven"
	fields["title"] = ""

	body, contentType := productForm("desk.jpg", fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	// shopId is checked before title.
	assert.Equal(t, "invalid shop reference", resp["message"])
}

func TestCreateProduct_MissingImage(t *testing.T) {
	router, m := newTestRouter(t)

	m.shops.On("GetByVendorAndID", mock.Anything, int64(42), int64(7)).
		Return(&domain.Shop{ID: 7, VendorID: 42}, nil)

	body, contentType := productForm("", validProductFields())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "invalid image", resp["message"])
}

// ============================================================================
// PUT /api/v1/products/{productId}
// ============================================================================

func TestUpdateProduct_Success_NoImage(t *testing.T) {
	router, m := newTestRouter(t)

	m.shops.On("GetByVendorAndID", mock.Anything, int64(42), int64(7)).
		Return(&domain.Shop{ID: 7, VendorID: 42}, nil)
	m.products.On("GetByShopAndID", mock.Anything, int64(1), int64(7)).
		Return(sampleProduct(), nil)
	m.products.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body, contentType := productForm("", validProductFields())
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/1", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "product updated", resp["message"])
	m.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUpdateProduct_ForeignVendor(t *testing.T) {
	router, m := newTestRouter(t)

	m.shops.On("GetByVendorAndID", mock.Anything, int64(43), int64(7)).
		Return(nil, apperrors.ErrNotFound)

	body, contentType := productForm("", validProductFields())
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/1", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, 43, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "vendor has no access to shop", resp["message"])
	m.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// ============================================================================
// DELETE /api/v1/products/{productId}
// ============================================================================

func TestDeleteProduct_Success(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("GetByID", mock.Anything, int64(1)).Return(sampleProduct(), nil)
	m.shops.On("GetByVendorAndID", mock.Anything, int64(42), int64(7)).
		Return(&domain.Shop{ID: 7, VendorID: 42}, nil)
	m.products.On("Delete", mock.Anything, int64(1)).Return(nil)
	m.storage.On("Delete", mock.Anything, "abc.jpg").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/1", nil)
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "product deleted", resp["message"])
}

func TestDeleteProduct_NotFound(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("GetByID", mock.Anything, int64(999)).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/999", nil)
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	m.shops.AssertNotCalled(t, "GetByVendorAndID", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// POST /api/v1/products/{productId}/reviews
// ============================================================================

func TestCreateReview_Success(t *testing.T) {
	router, m := newTestRouter(t)

	m.products.On("GetByID", mock.Anything, int64(1)).Return(sampleProduct(), nil)
	m.reviews.On("GetByCustomerAndProduct", mock.Anything, int64(5), int64(1)).
		Return(nil, apperrors.ErrNotFound)
	m.orders.On("ListIDsByCustomer", mock.Anything, int64(5)).Return([]int64{100}, nil)
	m.orders.On("ItemExists", mock.Anything, []int64{100}, int64(1)).Return(true, nil)
	m.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ID = 11
		}).
		Return(nil)

	payload := `{"content": "Sturdy and well finished.", "rating": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, 5, middleware.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "review created", resp["message"])
	review := resp["review"].(map[string]any)
	assert.Equal(t, float64(11), review["id"])
}

func TestCreateReview_VendorForbidden(t *testing.T) {
	router, m := newTestRouter(t)

	payload := `{"content": "Nice", "rating": 4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, 42, middleware.RoleVendor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_ValidationFields(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"content": "", "rating": 9}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, 5, middleware.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "request validation failed", resp["message"])
	assert.NotEmpty(t, resp["fields"])
}

// ============================================================================
// GET /api/v1/categories
// ============================================================================

func TestListCategories_OK(t *testing.T) {
	router, m := newTestRouter(t)

	m.categories.On("ListAll", mock.Anything).Return([]domain.Category{
		{ID: 3, Name: "Furniture"},
		{ID: 4, Name: "Lighting"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "categories fetched", body["message"])
	assert.Len(t, body["categories"], 2)
}
