/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large."},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Catalog and Cart Business Logic Errors
	ErrProductNotFound:      {Code: ErrProductNotFound, Message: "This item is no longer available."},
	ErrCategoryInvalid:      {Code: ErrCategoryInvalid, Message: "Unknown collection."},
	ErrProductFieldsInvalid: {Code: ErrProductFieldsInvalid, Message: "Product name and price are required."},
	ErrPromoNotFound:        {Code: ErrPromoNotFound, Message: "This promo code is not valid."},
	ErrPromoCodeExists:      {Code: ErrPromoCodeExists, Message: "This promo code already exists."},
	ErrPromoDiscountInvalid: {Code: ErrPromoDiscountInvalid, Message: "Discount must be between 1 and 100 percent."},

	// 3xxx: Identity and Session Errors
	ErrInvalidEmail:    {Code: ErrInvalidEmail, Message: "Please enter a valid email address."},
	ErrAlreadyLoggedIn: {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrUnauthorized:    {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrSignInRequired:  {Code: ErrSignInRequired, Message: "Please sign in to complete your purchase."},
	ErrAdminOnly:       {Code: ErrAdminOnly, Message: "You do not have access to the CMS dashboard.", Status: http.StatusForbidden},

	// 4xxx: Try-On and Generation Errors
	ErrTryOnQuotaExceeded:      {Code: ErrTryOnQuotaExceeded, Message: "You have used all of your virtual try-ons."},
	ErrGenerationFailed:        {Code: ErrGenerationFailed, Message: "Failed to generate try-on image."},
	ErrUserImageInvalid:        {Code: ErrUserImageInvalid, Message: "We could not read your photo. Please upload a JPEG or PNG."},
	ErrGarmentImageUnavailable: {Code: ErrGarmentImageUnavailable, Message: "This item's image is temporarily unavailable."},
	ErrResolutionInvalid:       {Code: ErrResolutionInvalid, Message: "Unsupported image quality."},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "Image upload failed. Please try again."},
}
