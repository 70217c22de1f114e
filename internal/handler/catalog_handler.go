package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bushnoor/internal/app/catalog"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/resp"
)

// HandleListProducts returns the collection, optionally filtered by the
// `category` query parameter.
func HandleListProducts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category != "" && !catalog.ValidCategory(category) {
			resp.RespondError(w, r, errs.NewError(errs.ErrCategoryInvalid))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"products": deps.Catalog.Products(category),
		})
	}
}

// HandleGetPromo validates a voucher code for the cart drawer.
func HandleGetPromo(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		promo, ok := deps.Catalog.Promo(code)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrPromoNotFound))
			return
		}

		resp.RespondSuccess(w, r, promo)
	}
}

// HandleGetHeaderMessage returns the promo banner text. An empty message
// means the banner is hidden.
func HandleGetHeaderMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"message": deps.Catalog.HeaderMessage(),
		})
	}
}
