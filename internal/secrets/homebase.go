// Package secrets recovers the home-base street address from an encrypted
// env value so the real address never appears in source control.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

// Fixed key/IV: the point is keeping the address out of the repo and plain
// env files, not defending against an attacker who already has the binary.
var (
	homeBaseKey = []byte("overlook-homebase-aes-256-key-01")
	homeBaseIV  = []byte("overlook-cbc-iv1")
)

var ErrMissingSecret = errors.New("home base cipher is not configured")

// DecryptHomeBase decodes a base64 AES-256-CBC ciphertext produced by
// EncryptHomeBase and returns the plaintext address.
func DecryptHomeBase(cipherB64 string) (string, error) {
	if cipherB64 == "" {
		return "", ErrMissingSecret
	}
	raw, err := base64.StdEncoding.DecodeString(cipherB64)
	if err != nil {
		return "", fmt.Errorf("decoding home base cipher: %w", err)
	}
	block, err := aes.NewCipher(homeBaseKey)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", errors.New("home base cipher is not a whole number of blocks")
	}
	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, homeBaseIV).CryptBlocks(plain, raw)
	return string(unpad(plain)), nil
}

// EncryptHomeBase is the inverse, used by cmd/homebase-cipher when rotating
// the configured address.
func EncryptHomeBase(address string) (string, error) {
	if address == "" {
		return "", errors.New("address is empty")
	}
	block, err := aes.NewCipher(homeBaseKey)
	if err != nil {
		return "", err
	}
	padded := pad([]byte(address))
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, homeBaseIV).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// PKCS#7 padding.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	for i := 0; i < n; i++ {
		b = append(b, byte(n))
	}
	return b
}

func unpad(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return b
	}
	return b[:len(b)-n]
}
