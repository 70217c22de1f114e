/*
Package handler provides the CMS admin endpoints: product and voucher
management, the header promo message, the visitor dashboard, and product
image uploads.

Every admin handler is wrapped by requireAdmin; the privileged flag lives on
the server-side session, not in the token claims.
*/
package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"bushnoor/internal/app/catalog"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/randx"
	"bushnoor/internal/pkg/req"
	"bushnoor/internal/pkg/resp"
)

const (
	// ProductImagePrefix is the object key prefix for CMS-uploaded product images.
	ProductImagePrefix = "products/"

	// MaxProductImageSize bounds CMS image uploads (10 MB).
	MaxProductImageSize int64 = 10 << 20

	// PresignedURLDuration is how long upload/download URLs remain valid.
	PresignedURLDuration = 15 * time.Minute
)

// requireAdmin gates a handler on the session's privileged flag.
func requireAdmin(deps *AppDeps, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)
		if id.IsGuest() {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}
		if !id.User.IsPrivileged {
			resp.RespondError(w, r, errs.NewError(errs.ErrAdminOnly))
			return
		}
		next(w, r)
	}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

func (in *ProductInput) validate() *errs.CustomError {
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return errs.NewError(errs.ErrProductFieldsInvalid)
	}
	if !catalog.ValidCategory(in.Category) {
		return errs.NewError(errs.ErrCategoryInvalid)
	}
	return nil
}

// HandleCreateProduct adds a product to the collection.
func HandleCreateProduct(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		var input ProductInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		product := deps.Catalog.AddProduct(catalog.Product{
			Name:        input.Name,
			Category:    input.Category,
			Price:       input.Price,
			Description: input.Description,
			ImageURL:    input.ImageURL,
		})

		resp.RespondSuccess(w, r, product)
	})
}

// HandleUpdateProduct replaces an existing product.
func HandleUpdateProduct(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "id")

		var input ProductInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		product := catalog.Product{
			ID:          productID,
			Name:        input.Name,
			Category:    input.Category,
			Price:       input.Price,
			Description: input.Description,
			ImageURL:    input.ImageURL,
		}
		if !deps.Catalog.UpdateProduct(product) {
			resp.RespondError(w, r, errs.NewError(errs.ErrProductNotFound))
			return
		}

		resp.RespondSuccess(w, r, product)
	})
}

// HandleDeleteProduct removes a product. An image uploaded through the CMS is
// deleted from object storage best-effort.
func HandleDeleteProduct(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "id")

		removed, ok := deps.Catalog.DeleteProduct(productID)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrProductNotFound))
			return
		}

		if strings.HasPrefix(removed.ImageURL, ProductImagePrefix) {
			go func(key string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = deps.Storage.Delete(ctx, key)
			}(removed.ImageURL)
		}

		resp.RespondSuccess(w, r, nil)
	})
}

type PromoInput struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}

// HandleListPromos returns all vouchers for the CMS panel.
func HandleListPromos(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"promos": deps.Catalog.Promos(),
		})
	})
}

// HandleAddPromo creates a voucher. Codes are stored upper-cased.
func HandleAddPromo(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		var input PromoInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Code) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if input.DiscountPercent < 1 || input.DiscountPercent > 100 {
			resp.RespondError(w, r, errs.NewError(errs.ErrPromoDiscountInvalid))
			return
		}

		promo, ok := deps.Catalog.AddPromo(input.Code, input.DiscountPercent)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrPromoCodeExists))
			return
		}

		resp.RespondSuccess(w, r, promo)
	})
}

// HandleRemovePromo deletes a voucher.
func HandleRemovePromo(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		if !deps.Catalog.RemovePromo(code) {
			resp.RespondError(w, r, errs.NewError(errs.ErrPromoNotFound))
			return
		}

		resp.RespondSuccess(w, r, nil)
	})
}

type HeaderMessageInput struct {
	Message string `json:"message"`
}

// HandleSetHeaderMessage replaces the promo banner text.
func HandleSetHeaderMessage(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		var input HeaderMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		deps.Catalog.SetHeaderMessage(input.Message)
		resp.RespondSuccess(w, r, map[string]any{
			"message": input.Message,
		})
	})
}

// HandleListVisits returns the recent visitor log for the CMS dashboard.
func HandleListVisits(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"visits": deps.Visits.Recent(r.Context()),
		})
	})
}

type PresignImageInput struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

// HandlePresignProductImage creates a time-limited upload URL for a CMS
// product image.
func HandlePresignProductImage(deps *AppDeps) http.HandlerFunc {
	return requireAdmin(deps, func(w http.ResponseWriter, r *http.Request) {
		var input PresignImageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.FileSize <= 0 || input.FileSize > MaxProductImageSize {
			resp.RespondError(w, r, errs.NewError(errs.ErrRequestEntityTooLarge))
			return
		}
		if !strings.HasPrefix(input.MimeType, "image/") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		fileExt := strings.ToLower(filepath.Ext(input.FileName))
		fileKey := ProductImagePrefix + randx.ImageID() + fileExt

		url, err := deps.Storage.PresignUpload(
			r.Context(),
			fileKey,
			input.MimeType,
			input.FileSize,
			PresignedURLDuration,
		)
		if err != nil {
			logx.Error(err, "presign_product_image: storage presign failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"presignedUrl": url,
			"fileKey":      fileKey,
		})
	})
}
