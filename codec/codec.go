// Package codec provides the binary-to-text encodings used across the SDK:
// Base58 for keys and addresses, Base64 for raw account data.
package codec

import (
	"encoding/base64"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// ErrInvalidEncoding is returned when input contains characters outside the
// target alphabet, or when a Base64 payload has an invalid length.
var ErrInvalidEncoding = errors.New("invalid encoding")

// Base58Encode returns the canonical Base58 (Bitcoin alphabet) form of b.
// Leading zero bytes map to leading '1' characters. The zero-length input
// encodes to "1".
func Base58Encode(b []byte) string {
	if len(b) == 0 {
		return "1"
	}
	return base58.Encode(b)
}

// Base58Decode is the inverse of Base58Encode. The empty string decodes to a
// single zero byte, mirroring the encode side's treatment of zero.
func Base58Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{0}, nil
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "base58: %v", err)
	}
	return b, nil
}

// Base64Encode returns the standard padded Base64 form of b.
func Base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Base64Decode is the inverse of Base64Encode.
func Base64Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "base64: %v", err)
	}
	return b, nil
}
