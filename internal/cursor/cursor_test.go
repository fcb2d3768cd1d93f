package cursor

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	for _, seq := range []int64{0, 1, 42, 9_007_199_254_740_993} {
		got, err := Decode(Encode(seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	}
}

func TestEncodeIsURLSafe(t *testing.T) {
	c := Encode(1 << 40)
	assert.NotContains(t, c, "=")
	assert.NotContains(t, c, "+")
	assert.NotContains(t, c, "/")
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"empty", ""},
		{"not base64", "---"},
		{"missing prefix", base64.RawURLEncoding.EncodeToString([]byte("12"))},
		{"non numeric", base64.RawURLEncoding.EncodeToString([]byte("seq:abc"))},
		{"negative", base64.RawURLEncoding.EncodeToString([]byte("seq:-3"))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.cursor)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
