package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bushnoor/internal/app/catalog"
	"bushnoor/internal/pkg/errs"
)

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Products []catalog.Product `json:"products"`
	}](t, res)
	assert.Len(t, data.Products, 4)
}

func TestListProductsByCategory(t *testing.T) {
	env := newTestEnv(t)

	path := "/api/products?category=" + url.QueryEscape(catalog.CategoryParty)
	_, res := env.do(t, http.MethodGet, path, "", nil)
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Products []catalog.Product `json:"products"`
	}](t, res)
	require.Len(t, data.Products, 2)
	for _, p := range data.Products {
		assert.Equal(t, catalog.CategoryParty, p.Category)
	}
}

func TestListProductsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodGet, "/api/products?category=Casual", "", nil)
	assert.Equal(t, errs.ErrCategoryInvalid, res.Code)
}

func TestGetPromoCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodGet, "/api/promos/luxe10", "", nil)
	require.Zero(t, res.Code)

	promo := decodeData[catalog.Promo](t, res)
	assert.Equal(t, "LUXE10", promo.Code)
	assert.Equal(t, 10, promo.DiscountPercent)
}

func TestGetPromoUnknownCode(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodGet, "/api/promos/NOPE", "", nil)
	assert.Equal(t, errs.ErrPromoNotFound, res.Code)
}

func TestGetHeaderMessage(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodGet, "/api/header", "", nil)
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Message string `json:"message"`
	}](t, res)
	assert.Contains(t, data.Message, "LUXE10")
}
