/*
Package randx provides functions for generating cryptographically secure random numbers and unique identifiers.

It is primarily used to generate order references shown after checkout and
unique object keys for stored images.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// OrderReferencePrefix brands the reference quoted back to the customer.
	OrderReferencePrefix = "BN-"

	// OrderReferenceLength is the fixed length of the Base62 part of an order reference.
	OrderReferenceLength = 8
)

// OrderReference generates a Base62 encoded checkout reference using a
// cryptographically secure random number generator (crypto/rand).
func OrderReference() (string, error) {
	result := make([]byte, OrderReferenceLength)

	for i := range OrderReferenceLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for order reference: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return OrderReferencePrefix + string(result), nil
}

// ImageID generates a standard UUID v4 string to serve as a unique object key
// component for stored images.
func ImageID() string {
	return uuid.New().String()
}
