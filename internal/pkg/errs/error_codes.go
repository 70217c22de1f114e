/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Catalog and Cart Business Logic Errors
const (
	// ErrProductNotFound indicates that the referenced product does not exist in the catalog.
	ErrProductNotFound = 2101

	// ErrCategoryInvalid indicates that an unknown product category was provided.
	ErrCategoryInvalid = 2102

	// ErrProductFieldsInvalid indicates a product create/update was missing required fields.
	ErrProductFieldsInvalid = 2103

	// ErrPromoNotFound indicates that the promo code being looked up or removed does not exist.
	ErrPromoNotFound = 2201

	// ErrPromoCodeExists indicates that the promo code being added already exists.
	ErrPromoCodeExists = 2202

	// ErrPromoDiscountInvalid indicates that the promo discount percentage is out of range.
	ErrPromoDiscountInvalid = 2203
)

// 3xxx: Identity and Session Errors
const (
	// ErrInvalidEmail indicates that the sign-in email did not look like an email address.
	ErrInvalidEmail = 3001

	// ErrAlreadyLoggedIn indicates a sign-in attempt while an identity token is already present.
	ErrAlreadyLoggedIn = 3002

	// ErrUnauthorized indicates the request requires a signed-in identity.
	ErrUnauthorized = 3003

	// ErrSignInRequired indicates checkout was attempted as a guest; the client
	// should open the sign-in flow instead of treating this as a failure.
	ErrSignInRequired = 3004

	// ErrAdminOnly indicates the identity lacks the privileged flag required for CMS access.
	ErrAdminOnly = 3005
)

// 4xxx: Try-On and Generation Errors
const (
	// ErrTryOnQuotaExceeded indicates the identity has no remaining try-on generations.
	ErrTryOnQuotaExceeded = 4001

	// ErrGenerationFailed indicates the external image generation call failed.
	ErrGenerationFailed = 4002

	// ErrUserImageInvalid indicates the uploaded user photo could not be decoded.
	ErrUserImageInvalid = 4003

	// ErrGarmentImageUnavailable indicates the product image could not be fetched for generation.
	ErrGarmentImageUnavailable = 4004

	// ErrResolutionInvalid indicates an unsupported quality tier was requested.
	ErrResolutionInvalid = 4005
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates an object storage operation (upload/presign) failed.
	ErrFileStorageFailed = 5001
)
