// Package security encodes internal numeric ids into opaque external tokens.
package security

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/blowfish"
)

const padByte = '!'

// IDEncoder reversibly maps int64 ids to hex tokens using Blowfish in ECB mode.
// The decimal form of the id is left-padded with '!' to a whole number of
// blocks (always at least one pad byte) before encryption.
type IDEncoder struct {
	cipher *blowfish.Cipher
}

// NewIDEncoder creates an encoder keyed by secret (1 to 56 bytes)
func NewIDEncoder(secret string) (*IDEncoder, error) {
	c, err := blowfish.NewCipher([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to create id cipher: %w", err)
	}
	return &IDEncoder{cipher: c}, nil
}

// EncodeID returns the external token for id
func (e *IDEncoder) EncodeID(id int64) string {
	plain := []byte(strconv.FormatInt(id, 10))
	pad := blowfish.BlockSize - len(plain)%blowfish.BlockSize
	plain = append(bytes.Repeat([]byte{padByte}, pad), plain...)

	out := make([]byte, len(plain))
	for i := 0; i < len(plain); i += blowfish.BlockSize {
		e.cipher.Encrypt(out[i:i+blowfish.BlockSize], plain[i:i+blowfish.BlockSize])
	}
	return hex.EncodeToString(out)
}

// DecodeID reverses EncodeID
func (e *IDEncoder) DecodeID(token string) (int64, error) {
	raw, err := hex.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid id token: %w", err)
	}
	if len(raw) == 0 || len(raw)%blowfish.BlockSize != 0 {
		return 0, fmt.Errorf("invalid id token length %d", len(raw))
	}

	plain := make([]byte, len(raw))
	for i := 0; i < len(raw); i += blowfish.BlockSize {
		e.cipher.Decrypt(plain[i:i+blowfish.BlockSize], raw[i:i+blowfish.BlockSize])
	}

	id, err := strconv.ParseInt(string(bytes.TrimLeft(plain, string(padByte))), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id token: %w", err)
	}
	return id, nil
}
