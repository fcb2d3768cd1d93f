// Package cursor encodes the opaque pagination cursors handed to explorer
// clients in search_after / search_before.
//
// A cursor wraps the transaction sequence number so clients cannot depend on
// its shape.
package cursor

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

const prefix = "seq:"

// ErrInvalid is returned by Decode for anything that was not produced by Encode.
var ErrInvalid = errors.New("invalid cursor")

// Encode returns the cursor for the given sequence number.
func Encode(seq int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(prefix + strconv.FormatInt(seq, 10)))
}

// Decode returns the sequence number wrapped by c.
func Decode(c string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(c)
	if err != nil {
		return 0, ErrInvalid
	}

	value, found := strings.CutPrefix(string(raw), prefix)
	if !found {
		return 0, ErrInvalid
	}

	seq, err := strconv.ParseInt(value, 10, 64)
	if err != nil || seq < 0 {
		return 0, ErrInvalid
	}

	return seq, nil
}
