package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bushnoor/internal/app/cart"
	"bushnoor/internal/app/catalog"
	"bushnoor/internal/app/identity"
	"bushnoor/internal/app/kvstore"
	"bushnoor/internal/app/quota"
	"bushnoor/internal/app/stylist"
	"bushnoor/internal/app/visitor"
	"bushnoor/internal/configs"
)

// stubStylist is a canned stylist.Service for handler tests.
type stubStylist struct {
	reply    string
	image    []byte
	genErr   error
	genCalls int
}

func (s *stubStylist) SendMessage(_ context.Context, _ string, _ []stylist.Message) string {
	if s.reply == "" {
		return stylist.FallbackReply
	}
	return s.reply
}

func (s *stubStylist) GenerateTryOn(_ context.Context, _, _ []byte, _ stylist.Resolution) ([]byte, error) {
	s.genCalls++
	if s.genErr != nil {
		return nil, s.genErr
	}
	return s.image, nil
}

// stubStorage is an in-memory storage.StorageService.
type stubStorage struct {
	uploads map[string][]byte
	deleted []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{uploads: make(map[string][]byte)}
}

func (s *stubStorage) Upload(_ context.Context, key string, _ string, body []byte) error {
	s.uploads[key] = body
	return nil
}

func (s *stubStorage) PresignUpload(_ context.Context, key string, _ string, _ int64, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + key, nil
}

func (s *stubStorage) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + key, nil
}

func (s *stubStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

type testEnv struct {
	deps    *AppDeps
	router  http.Handler
	stylist *stubStylist
	storage *stubStorage
	kv      *kvstore.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := kvstore.NewMemory()
	sty := &stubStylist{reply: "A saree would be lovely.", image: []byte("png-bytes")}
	sto := newStubStorage()

	deps := &AppDeps{
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
			JWTSecret:      "test-secret",
		},
		Sessions: identity.NewSessions(),
		Cart:     cart.NewStore(kv),
		Quota:    quota.NewTracker(kv),
		Catalog:  catalog.New(),
		Visits:   visitor.NewLog(kv),
		Stylist:  sty,
		Storage:  sto,
	}

	return &testEnv{
		deps:    deps,
		router:  Router(deps),
		stylist: sty,
		storage: sto,
		kv:      kv,
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues a request through the full router and decodes the JSON envelope.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

// login signs in through the API and returns the issued token.
func (e *testEnv) login(t *testing.T, email, name string) string {
	t.Helper()

	_, env := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email,
		"name":  name,
	})
	require.Zero(t, env.Code, "login failed: %s", env.Message)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
