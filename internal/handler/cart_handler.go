package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bushnoor/internal/app/cart"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/randx"
	"bushnoor/internal/pkg/req"
	"bushnoor/internal/pkg/resp"
)

// cartResponse is the payload shared by every cart endpoint: the current
// lines plus the running subtotal.
func cartResponse(lines []cart.Line) map[string]any {
	return map[string]any{
		"items":    lines,
		"subtotal": cart.Subtotal(lines),
	}
}

// HandleGetCart returns the active cart for the request's identity.
func HandleGetCart(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)

		lines, err := deps.Cart.Lines(r.Context(), id)
		if err != nil {
			logx.Error(err, "get_cart: failed to load cart")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, cartResponse(lines))
	}
}

type AddCartItemInput struct {
	ProductID string `json:"productId"`
}

// HandleAddCartItem adds one unit of a catalog product to the cart, merging
// into an existing line when the product is already there.
func HandleAddCartItem(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)

		var input AddCartItemInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		product, ok := deps.Catalog.Product(input.ProductID)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrProductNotFound))
			return
		}

		err := deps.Cart.Add(r.Context(), id, cart.Line{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
		})
		if err != nil {
			logx.Error(err, "add_cart_item: failed to persist cart", "product_id", input.ProductID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		lines, err := deps.Cart.Lines(r.Context(), id)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		resp.RespondSuccess(w, r, cartResponse(lines))
	}
}

// HandleRemoveCartItem deletes a line from the cart. Removing a product that
// is not in the cart succeeds silently.
func HandleRemoveCartItem(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)
		productID := chi.URLParam(r, "productID")

		if err := deps.Cart.Remove(r.Context(), id, productID); err != nil {
			logx.Error(err, "remove_cart_item: failed to persist cart", "product_id", productID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		lines, err := deps.Cart.Lines(r.Context(), id)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		resp.RespondSuccess(w, r, cartResponse(lines))
	}
}

type UpdateQuantityInput struct {
	Delta int `json:"delta"`
}

// HandleUpdateCartQuantity applies a quantity delta to a line, clamping at one.
func HandleUpdateCartQuantity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)
		productID := chi.URLParam(r, "productID")

		var input UpdateQuantityInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Cart.UpdateQuantity(r.Context(), id, productID, input.Delta); err != nil {
			logx.Error(err, "update_cart_quantity: failed to persist cart", "product_id", productID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		lines, err := deps.Cart.Lines(r.Context(), id)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		resp.RespondSuccess(w, r, cartResponse(lines))
	}
}

// HandleCheckout clears the cart and reports the subtotal captured at that
// moment. Guests are redirected to the sign-in flow via ErrSignInRequired;
// their cart is left untouched. No payment is processed.
func HandleCheckout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)

		subtotal, err := deps.Cart.Checkout(r.Context(), id)
		if err != nil {
			if errors.Is(err, cart.ErrSignInRequired) {
				resp.RespondError(w, r, errs.NewError(errs.ErrSignInRequired))
				return
			}
			logx.Error(err, "checkout: failed to clear cart")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		reference, refErr := randx.OrderReference()
		if refErr != nil {
			logx.Error(refErr, "checkout: order reference generation failed")
			reference = randx.OrderReferencePrefix + "PENDING"
		}

		resp.RespondSuccess(w, r, map[string]any{
			"subtotal":  subtotal,
			"reference": reference,
		})
	}
}
