/*
Package handler provides HTTP handler functions for sign-in and sign-out.

There is no backing user database: the sign-in form fabricates a NamedUser
from the typed email and name. Identity changes are the only events that
reload the cart from storage, so both handlers invoke the reload hook
synchronously before responding.
*/
package handler

import (
	"net/http"
	"regexp"

	"bushnoor/internal/app/identity"
	"bushnoor/internal/pkg/auth/jwt"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/req"
	"bushnoor/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type LoginInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleLogin fabricates a user record from the typed email and name, opens a
// session for it, reloads the session's cart, and issues an identity token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !deps.RequestIdentity(r).IsGuest() {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		sess := deps.Sessions.SignIn(input.Email, input.Name)

		// Identity changed: materialize this user's cart before answering so the
		// first cart read after sign-in reflects storage.
		if err := deps.Cart.Reload(r.Context(), sess.Identity()); err != nil {
			logx.Error(err, "login: cart reload failed", "email", input.Email)
			deps.Sessions.SignOut(sess.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		payload := &jwt.Payload{
			SessionID:    sess.ID,
			Email:        sess.User.Email,
			DisplayName:  sess.User.DisplayName,
			IsPrivileged: sess.User.IsPrivileged,
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.IdentityExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			deps.Sessions.SignOut(sess.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  sess.User,
		})
	}
}

// HandleLogout destroys the session, releasing its materialized cart. The
// client falls back to the guest identity and its guest cart.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if sess := deps.Sessions.Get(payload.SessionID); sess != nil {
			deps.Cart.Release(sess.Identity())
			deps.Sessions.SignOut(sess.ID)
		}

		// Identity changed back to Guest: rematerialize the guest cart.
		if err := deps.Cart.Reload(r.Context(), identity.Guest); err != nil {
			logx.Error(err, "logout: guest cart reload failed")
		}

		resp.RespondSuccess(w, r, nil)
	}
}
