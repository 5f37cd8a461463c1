/*
Package randx generates identifiers used across the server.

Guest user ids are short Base62 strings from crypto/rand; wire message
envelope ids are standard UUID v4 strings.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for guest id generation.
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the size of the Base62 character set.
	Base62Len = int64(len(Base62Chars))

	// GuestIDPrefix marks server-minted guest user ids.
	GuestIDPrefix = "guest_"

	// GuestIDRawLength is the length of the random part of a guest id.
	GuestIDRawLength = 8
)

// base62String returns a random Base62 string of the given length.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random base62 character: %w", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// GuestID mints a new guest user id of the form "guest_XXXXXXXX".
func GuestID() (string, error) {
	raw, err := base62String(GuestIDRawLength)
	if err != nil {
		return "", err
	}

	return GuestIDPrefix + raw, nil
}

// IsValidGuestID reports whether id has the server-minted guest id shape.
func IsValidGuestID(id string) bool {
	if !strings.HasPrefix(id, GuestIDPrefix) {
		return false
	}

	rawID := id[len(GuestIDPrefix):]

	if len(rawID) != GuestIDRawLength {
		return false
	}

	for _, char := range rawID {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// MessageID returns a UUID v4 string used as a wire envelope identifier.
func MessageID() string {
	return uuid.New().String()
}
