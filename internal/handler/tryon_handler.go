/*
Package handler provides the virtual try-on endpoints.

The quota gate is re-checked immediately before the external generation call;
there is no reservation. Usage is recorded only after the call succeeds, so a
failed or abandoned generation never consumes a try-on.
*/
package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"bushnoor/internal/app/stylist"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/randx"
	"bushnoor/internal/pkg/req"
	"bushnoor/internal/pkg/resp"
)

// TryOnImagePrefix is the object key prefix for generated try-on results.
const TryOnImagePrefix = "tryon/"

// HandleTryOnQuota reports the identity's try-on allowance.
func HandleTryOnQuota(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)

		resp.RespondSuccess(w, r, map[string]any{
			"limit":     deps.Quota.Limit(id),
			"used":      deps.Quota.CurrentUsage(r.Context(), id),
			"remaining": deps.Quota.Remaining(r.Context(), id),
		})
	}
}

type TryOnGenerateInput struct {
	ProductID  string `json:"productId"`
	UserImage  string `json:"userImage"`
	Resolution string `json:"resolution"`
}

// HandleTryOnGenerate composes the customer's photo with a product image via
// the generative service.
func HandleTryOnGenerate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := deps.RequestIdentity(r)

		var input TryOnGenerateInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		res := stylist.Resolution(input.Resolution)
		if input.Resolution == "" {
			res = stylist.Res1K
		}
		if !stylist.ValidResolution(res) {
			resp.RespondError(w, r, errs.NewError(errs.ErrResolutionInvalid))
			return
		}

		product, ok := deps.Catalog.Product(input.ProductID)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrProductNotFound))
			return
		}

		userImage, err := decodeUserImage(input.UserImage)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserImageInvalid))
			return
		}

		if !deps.Quota.Allow(r.Context(), id) {
			resp.RespondError(w, r, errs.NewError(errs.ErrTryOnQuotaExceeded))
			return
		}

		garmentImage, err := stylist.FetchImage(r.Context(), product.ImageURL)
		if err != nil {
			logx.Error(err, "tryon: garment image fetch failed", "product_id", product.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrGarmentImageUnavailable))
			return
		}

		// The quota has no reservation step, so re-check right before the
		// external call; a failure past this point must not consume a try-on.
		if !deps.Quota.Allow(r.Context(), id) {
			resp.RespondError(w, r, errs.NewError(errs.ErrTryOnQuotaExceeded))
			return
		}

		generated, err := deps.Stylist.GenerateTryOn(r.Context(), userImage, garmentImage, res)
		if err != nil {
			logx.Error(err, "tryon: generation failed", "product_id", product.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrGenerationFailed))
			return
		}

		if err := deps.Quota.RecordUsage(r.Context(), id); err != nil {
			logx.Error(err, "tryon: failed to record usage")
		}

		data := map[string]any{
			"image":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(generated),
			"remaining": deps.Quota.Remaining(r.Context(), id),
		}

		// Best effort: keep a downloadable copy in object storage. The inline
		// image above is the primary result.
		key := TryOnImagePrefix + randx.ImageID() + ".png"
		if err := deps.Storage.Upload(r.Context(), key, "image/png", generated); err != nil {
			logx.Warn("tryon: result upload failed", "key", key)
		} else if url, err := deps.Storage.PresignDownload(r.Context(), key, PresignedURLDuration); err == nil {
			data["imageUrl"] = url
		}

		resp.RespondSuccess(w, r, data)
	}
}

// decodeUserImage accepts either a bare base64 payload or a full data URL.
func decodeUserImage(raw string) ([]byte, error) {
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}
