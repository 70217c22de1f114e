/*
Package handler provides the HTTP handlers and routing setup for the BushNoor storefront server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"bushnoor/internal/pkg/auth/jwt"
	"bushnoor/internal/pkg/limiter"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/resp"
)

const (
	LoginRate       = 0.2
	LoginBurst      = 5
	GenerateRate    = 0.05
	GenerateBurst   = 2
	ChatSocketRate  = 0.2
	ChatSocketBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)
	generateLimiter := limiter.NewIPRateLimiter(rate.Limit(GenerateRate), GenerateBurst)
	socketLimiter := limiter.NewIPRateLimiter(rate.Limit(ChatSocketRate), ChatSocketBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "BushNoor Storefront Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", loginLimiter.Middleware(HandleLogin(deps)).ServeHTTP)
			auth.Post("/logout", HandleLogout(deps))
		})

		api.Route("/cart", func(c chi.Router) {
			c.Get("/", HandleGetCart(deps))
			c.Post("/items", HandleAddCartItem(deps))
			c.Delete("/items/{productID}", HandleRemoveCartItem(deps))
			c.Patch("/items/{productID}", HandleUpdateCartQuantity(deps))
			c.Post("/checkout", HandleCheckout(deps))
		})

		api.Get("/products", HandleListProducts(deps))
		api.Get("/promos/{code}", HandleGetPromo(deps))
		api.Get("/header", HandleGetHeaderMessage(deps))

		api.Route("/tryon", func(t chi.Router) {
			t.Get("/quota", HandleTryOnQuota(deps))
			t.Post("/generate", generateLimiter.Middleware(HandleTryOnGenerate(deps)).ServeHTTP)
		})

		api.Post("/chat", HandleChat(deps))
		api.Post("/visit", HandleRecordVisit(deps))

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/products", HandleCreateProduct(deps))
			admin.Put("/products/{id}", HandleUpdateProduct(deps))
			admin.Delete("/products/{id}", HandleDeleteProduct(deps))
			admin.Post("/products/image/presign", HandlePresignProductImage(deps))

			admin.Get("/promos", HandleListPromos(deps))
			admin.Post("/promos", HandleAddPromo(deps))
			admin.Delete("/promos/{code}", HandleRemovePromo(deps))

			admin.Put("/header", HandleSetHeaderMessage(deps))
			admin.Get("/visits", HandleListVisits(deps))
		})
	})

	r.Get("/ws/stylist", HandleStylistSocket(wsUpgrader, socketLimiter, deps))

	return r
}
