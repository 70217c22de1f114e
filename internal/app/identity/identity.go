/*
Package identity contains the identity model and session registry for the storefront.

There is no backing user database: signing in fabricates a NamedUser from the
typed email and name. An identity is either the anonymous Guest or a NamedUser
held by an in-memory session; the session is the explicit context object that
owns per-login state such as the try-on usage counter.
*/
package identity

import (
	"strings"
)

// GuestScopeKey is the storage scope shared by all guest activity.
const GuestScopeKey = "guest"

// NamedUser is the identity record fabricated at sign-in.
type NamedUser struct {
	// Email is used exactly as typed; it is the uniqueness key for storage scoping.
	Email string `json:"email"`

	// DisplayName defaults to the local part of the email when no name is provided.
	DisplayName string `json:"name"`

	// IsPrivileged grants access to the CMS admin endpoints.
	IsPrivileged bool `json:"isAdmin"`

	// TryOnUsageCount is the per-login try-on usage. It starts at zero on every
	// sign-in and is never restored from durable storage.
	TryOnUsageCount int `json:"tryOnCount"`
}

// Identity is either the Guest (User == nil) or a signed-in NamedUser.
type Identity struct {
	User *NamedUser
}

// Guest is the anonymous identity.
var Guest = Identity{}

// IsGuest reports whether the identity carries no signed-in user.
func (id Identity) IsGuest() bool {
	return id.User == nil
}

// ScopeKey derives the storage scope for the identity. It is pure and total:
// guests share the constant "guest" scope, named users are scoped by email.
func ScopeKey(id Identity) string {
	if id.User == nil {
		return GuestScopeKey
	}
	return id.User.Email
}

// NewNamedUser fabricates the sign-in record from the typed email and name.
// The privileged flag is granted when the lowercased email contains "admin".
func NewNamedUser(email, name string) *NamedUser {
	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = email
		if at := strings.Index(email, "@"); at > 0 {
			displayName = email[:at]
		}
	}

	return &NamedUser{
		Email:           email,
		DisplayName:     displayName,
		IsPrivileged:    strings.Contains(strings.ToLower(email), "admin"),
		TryOnUsageCount: 0,
	}
}
