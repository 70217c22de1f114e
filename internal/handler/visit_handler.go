package handler

import (
	"net/http"
	"strings"

	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/req"
	"bushnoor/internal/pkg/resp"
)

type VisitInput struct {
	Page string `json:"page"`
}

// HandleRecordVisit appends a page visit to the bounded visitor log.
func HandleRecordVisit(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input VisitInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		page := strings.TrimSpace(input.Page)
		if page == "" {
			page = "Home"
		}

		if err := deps.Visits.Record(r.Context(), page); err != nil {
			logx.Error(err, "record_visit: failed to save visitor log")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
