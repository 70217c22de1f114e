package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bushnoor/internal/app/catalog"
	"bushnoor/internal/app/quota"
	"bushnoor/internal/pkg/errs"
)

// garmentServer serves a fake product image so generation tests never leave
// the process.
func garmentServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("garment-jpeg"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func addTryOnProduct(env *testEnv, imageURL string) catalog.Product {
	return env.deps.Catalog.AddProduct(catalog.Product{
		Name:     "Test Gown",
		Category: catalog.CategoryParty,
		Price:    500,
		ImageURL: imageURL,
	})
}

func userPhoto() string {
	return base64.StdEncoding.EncodeToString([]byte("user-jpeg"))
}

type tryOnData struct {
	Image     string `json:"image"`
	ImageURL  string `json:"imageUrl"`
	Remaining int    `json:"remaining"`
}

func TestTryOnQuotaEndpoint(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodGet, "/api/tryon/quota", "", nil)
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Limit     int `json:"limit"`
		Used      int `json:"used"`
		Remaining int `json:"remaining"`
	}](t, res)
	assert.Equal(t, quota.GuestLimit, data.Limit)
	assert.Zero(t, data.Used)
	assert.Equal(t, quota.GuestLimit, data.Remaining)

	token := env.login(t, "aisha@example.com", "Aisha")
	_, res = env.do(t, http.MethodGet, "/api/tryon/quota", token, nil)
	require.Zero(t, res.Code)

	data = decodeData[struct {
		Limit     int `json:"limit"`
		Used      int `json:"used"`
		Remaining int `json:"remaining"`
	}](t, res)
	assert.Equal(t, quota.UserLimit, data.Limit)
	assert.Equal(t, quota.UserLimit, data.Remaining)
}

func TestTryOnGenerateConsumesGuestQuota(t *testing.T) {
	env := newTestEnv(t)
	ts := garmentServer(t)
	product := addTryOnProduct(env, ts.URL)

	_, res := env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	require.Zero(t, res.Code, "message: %s", res.Message)

	data := decodeData[tryOnData](t, res)
	assert.True(t, strings.HasPrefix(data.Image, "data:image/png;base64,"))
	assert.Zero(t, data.Remaining)
	assert.Equal(t, 1, env.stylist.genCalls)

	// The result was archived to object storage best-effort.
	require.Len(t, env.storage.uploads, 1)
	assert.NotEmpty(t, data.ImageURL)

	// The single guest try-on is spent.
	_, res = env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	assert.Equal(t, errs.ErrTryOnQuotaExceeded, res.Code)
	assert.Equal(t, 1, env.stylist.genCalls, "a denied request never reaches the model")
}

func TestTryOnGenerateFailureDoesNotConsumeQuota(t *testing.T) {
	env := newTestEnv(t)
	env.stylist.genErr = errors.New("model unavailable")
	ts := garmentServer(t)
	product := addTryOnProduct(env, ts.URL)

	_, res := env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	assert.Equal(t, errs.ErrGenerationFailed, res.Code)

	// The failed attempt is free; the guest can try again.
	env.stylist.genErr = nil
	_, res = env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	assert.Zero(t, res.Code)
}

func TestTryOnGenerateAcceptsDataURL(t *testing.T) {
	env := newTestEnv(t)
	ts := garmentServer(t)
	product := addTryOnProduct(env, ts.URL)

	_, res := env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId":  product.ID,
		"userImage":  "data:image/jpeg;base64," + userPhoto(),
		"resolution": "2K",
	})
	assert.Zero(t, res.Code)
}

func TestTryOnGenerateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     func(product catalog.Product) map[string]string
		wantCode int
	}{
		{
			name: "unknown product",
			body: func(catalog.Product) map[string]string {
				return map[string]string{"productId": "nope", "userImage": userPhoto()}
			},
			wantCode: errs.ErrProductNotFound,
		},
		{
			name: "bad resolution",
			body: func(p catalog.Product) map[string]string {
				return map[string]string{"productId": p.ID, "userImage": userPhoto(), "resolution": "8K"}
			},
			wantCode: errs.ErrResolutionInvalid,
		},
		{
			name: "undecodable photo",
			body: func(p catalog.Product) map[string]string {
				return map[string]string{"productId": p.ID, "userImage": "!!not-base64!!"}
			},
			wantCode: errs.ErrUserImageInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ts := garmentServer(t)
			product := addTryOnProduct(env, ts.URL)

			_, res := env.do(t, http.MethodPost, "/api/tryon/generate", "", tt.body(product))
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Zero(t, env.stylist.genCalls, "rejected requests never reach the model")
		})
	}
}

func TestTryOnGenerateGarmentUnavailable(t *testing.T) {
	env := newTestEnv(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)
	product := addTryOnProduct(env, ts.URL)

	_, res := env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	assert.Equal(t, errs.ErrGarmentImageUnavailable, res.Code)

	// A failed garment fetch is free as well.
	_, quotaRes := env.do(t, http.MethodGet, "/api/tryon/quota", "", nil)
	data := decodeData[struct {
		Used int `json:"used"`
	}](t, quotaRes)
	assert.Zero(t, data.Used)
}

func TestTryOnUserQuotaIndependentOfGuest(t *testing.T) {
	env := newTestEnv(t)
	ts := garmentServer(t)
	product := addTryOnProduct(env, ts.URL)

	// Exhaust the guest allowance.
	_, res := env.do(t, http.MethodPost, "/api/tryon/generate", "", map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	require.Zero(t, res.Code)

	// A signed-in user still has the full session allowance.
	token := env.login(t, "aisha@example.com", "Aisha")
	_, res = env.do(t, http.MethodPost, "/api/tryon/generate", token, map[string]string{
		"productId": product.ID,
		"userImage": userPhoto(),
	})
	require.Zero(t, res.Code)

	data := decodeData[tryOnData](t, res)
	assert.Equal(t, quota.UserLimit-1, data.Remaining)
}
