package handler

import (
	"net/http"

	"bushnoor/internal/app/cart"
	"bushnoor/internal/app/catalog"
	"bushnoor/internal/app/identity"
	"bushnoor/internal/app/quota"
	"bushnoor/internal/app/storage"
	"bushnoor/internal/app/stylist"
	"bushnoor/internal/app/visitor"
	"bushnoor/internal/configs"
	"bushnoor/internal/pkg/auth/jwt"
)

type AppDeps struct {
	Config   *configs.AppConfig
	Sessions *identity.Sessions
	Cart     *cart.Store
	Quota    *quota.Tracker
	Catalog  *catalog.Catalog
	Visits   *visitor.Log
	Stylist  stylist.Service
	Storage  storage.StorageService
}

// RequestIdentity resolves the request's identity. A missing or stale token
// (signed out, server restarted) degrades to Guest rather than an error; the
// session registry is the authority, not the token claims.
func (d *AppDeps) RequestIdentity(r *http.Request) identity.Identity {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return identity.Guest
	}

	sess := d.Sessions.Get(payload.SessionID)
	if sess == nil {
		return identity.Guest
	}

	return sess.Identity()
}
