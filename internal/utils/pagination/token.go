// Package pagination encodes keyset cursors for listings ordered by
// (created_at DESC, id DESC).
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeFormat = time.RFC3339Nano
	separator  = "|"
)

// ErrInvalidToken is wrapped by every decoding failure.
var ErrInvalidToken = errors.New("invalid pagination token")

// EncodeToken builds the cursor for the row (createdAt, id). The next page
// starts strictly after it. Tokens are URL-safe so they can travel in a query
// string unescaped.
func EncodeToken(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(timeFormat) + separator + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: base64 decode: %v", ErrInvalidToken, err)
	}

	at, id, ok := strings.Cut(string(decoded), separator)
	if !ok || id == "" || strings.Contains(id, separator) {
		return time.Time{}, "", fmt.Errorf("%w: expected created_at|id", ErrInvalidToken)
	}

	createdAt, err := time.Parse(timeFormat, at)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: created_at parse: %v", ErrInvalidToken, err)
	}
	return createdAt, id, nil
}
