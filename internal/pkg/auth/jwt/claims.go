package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims for the
// BushNoor storefront. The token is the client's handle on a server-side
// session; the session record, not the token, owns mutable state like the
// try-on usage counter.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// SessionID identifies the server-side session created at sign-in.
	SessionID string `json:"session_id"`

	// Email is the address typed at sign-in, preserved exactly as typed.
	Email string `json:"email"`

	// DisplayName is the name shown in the navigation bar.
	DisplayName string `json:"display_name"`

	// IsPrivileged mirrors the session's CMS access flag. The session registry
	// remains the authority; this claim only lets the client render the admin entry.
	IsPrivileged bool `json:"is_privileged"`
}
