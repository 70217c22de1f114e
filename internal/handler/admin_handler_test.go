package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bushnoor/internal/app/catalog"
	"bushnoor/internal/app/visitor"
	"bushnoor/internal/pkg/errs"
)

func TestAdminEndpointsRequirePrivilege(t *testing.T) {
	env := newTestEnv(t)

	rec, res := env.do(t, http.MethodGet, "/api/admin/promos", "", nil)
	assert.Equal(t, errs.ErrUnauthorized, res.Code)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	shopper := env.login(t, "aisha@example.com", "Aisha")
	rec, res = env.do(t, http.MethodGet, "/api/admin/promos", shopper, nil)
	assert.Equal(t, errs.ErrAdminOnly, res.Code)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@bushnoor.com", "")

	_, res := env.do(t, http.MethodPost, "/api/admin/products", admin, map[string]any{
		"name":        "Ivory Reception Gown",
		"category":    catalog.CategoryWedding,
		"price":       990,
		"description": "Minimalist ivory gown for receptions.",
	})
	require.Zero(t, res.Code)
	created := decodeData[catalog.Product](t, res)
	require.NotEmpty(t, created.ID)

	_, res = env.do(t, http.MethodPut, "/api/admin/products/"+created.ID, admin, map[string]any{
		"name":     "Ivory Reception Gown",
		"category": catalog.CategoryWedding,
		"price":    940,
	})
	require.Zero(t, res.Code)
	updated := decodeData[catalog.Product](t, res)
	assert.InDelta(t, 940.0, updated.Price, 1e-9)

	_, res = env.do(t, http.MethodDelete, "/api/admin/products/"+created.ID, admin, nil)
	require.Zero(t, res.Code)

	_, res = env.do(t, http.MethodPut, "/api/admin/products/"+created.ID, admin, map[string]any{
		"name":     "Ivory Reception Gown",
		"category": catalog.CategoryWedding,
		"price":    940,
	})
	assert.Equal(t, errs.ErrProductNotFound, res.Code)
}

func TestAdminProductValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@bushnoor.com", "")

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{
			name:     "missing name",
			body:     map[string]any{"category": catalog.CategoryParty, "price": 100},
			wantCode: errs.ErrProductFieldsInvalid,
		},
		{
			name:     "zero price",
			body:     map[string]any{"name": "Gown", "category": catalog.CategoryParty, "price": 0},
			wantCode: errs.ErrProductFieldsInvalid,
		},
		{
			name:     "unknown category",
			body:     map[string]any{"name": "Gown", "category": "Casual", "price": 100},
			wantCode: errs.ErrCategoryInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := env.do(t, http.MethodPost, "/api/admin/products", admin, tt.body)
			assert.Equal(t, tt.wantCode, res.Code)
		})
	}
}

func TestAdminPromoManagement(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@bushnoor.com", "")

	_, res := env.do(t, http.MethodPost, "/api/admin/promos", admin, map[string]any{
		"code":            "summer15",
		"discountPercent": 15,
	})
	require.Zero(t, res.Code)
	assert.Equal(t, "SUMMER15", decodeData[catalog.Promo](t, res).Code)

	_, res = env.do(t, http.MethodPost, "/api/admin/promos", admin, map[string]any{
		"code":            "SUMMER15",
		"discountPercent": 20,
	})
	assert.Equal(t, errs.ErrPromoCodeExists, res.Code)

	_, res = env.do(t, http.MethodPost, "/api/admin/promos", admin, map[string]any{
		"code":            "ZERO",
		"discountPercent": 0,
	})
	assert.Equal(t, errs.ErrPromoDiscountInvalid, res.Code)

	_, res = env.do(t, http.MethodDelete, "/api/admin/promos/SUMMER15", admin, nil)
	require.Zero(t, res.Code)

	_, res = env.do(t, http.MethodDelete, "/api/admin/promos/SUMMER15", admin, nil)
	assert.Equal(t, errs.ErrPromoNotFound, res.Code)
}

func TestAdminSetHeaderMessage(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@bushnoor.com", "")

	_, res := env.do(t, http.MethodPut, "/api/admin/header", admin, map[string]string{
		"message": "END OF SEASON SALE",
	})
	require.Zero(t, res.Code)

	_, res = env.do(t, http.MethodGet, "/api/header", "", nil)
	require.Zero(t, res.Code)
	data := decodeData[struct {
		Message string `json:"message"`
	}](t, res)
	assert.Equal(t, "END OF SEASON SALE", data.Message)
}

func TestAdminVisitorDashboard(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodPost, "/api/visit", "", map[string]string{"page": "Shop"})
	require.Zero(t, res.Code)
	_, res = env.do(t, http.MethodPost, "/api/visit", "", map[string]string{})
	require.Zero(t, res.Code)

	admin := env.login(t, "admin@bushnoor.com", "")
	_, res = env.do(t, http.MethodGet, "/api/admin/visits", admin, nil)
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Visits []visitor.Entry `json:"visits"`
	}](t, res)
	require.Len(t, data.Visits, 2)
	assert.Equal(t, "Home", data.Visits[0].Page, "empty page defaults to Home, newest first")
	assert.Equal(t, "Shop", data.Visits[1].Page)
}

func TestPresignProductImage(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@bushnoor.com", "")

	_, res := env.do(t, http.MethodPost, "/api/admin/products/image/presign", admin, map[string]any{
		"file_name": "gown.JPG",
		"mime_type": "image/jpeg",
		"file_size": 1024,
	})
	require.Zero(t, res.Code)

	data := decodeData[struct {
		PresignedURL string `json:"presignedUrl"`
		FileKey      string `json:"fileKey"`
	}](t, res)
	assert.True(t, strings.HasPrefix(data.FileKey, ProductImagePrefix))
	assert.True(t, strings.HasSuffix(data.FileKey, ".jpg"), "extension is lower-cased")
	assert.Contains(t, data.PresignedURL, data.FileKey)
}

func TestPresignProductImageValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@bushnoor.com", "")

	_, res := env.do(t, http.MethodPost, "/api/admin/products/image/presign", admin, map[string]any{
		"file_name": "gown.jpg",
		"mime_type": "image/jpeg",
		"file_size": MaxProductImageSize + 1,
	})
	assert.Equal(t, errs.ErrRequestEntityTooLarge, res.Code)

	_, res = env.do(t, http.MethodPost, "/api/admin/products/image/presign", admin, map[string]any{
		"file_name": "gown.pdf",
		"mime_type": "application/pdf",
		"file_size": 1024,
	})
	assert.Equal(t, errs.ErrInvalidParams, res.Code)
}
