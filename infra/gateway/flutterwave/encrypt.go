package flutterwave

import (
	"crypto/des"
	"encoding/base64"
	"errors"
)

// encrypt3DES encrypts plain with 3DES-ECB and PKCS7 padding and returns the
// base64 ciphertext, matching what the card charge endpoint expects.
func encrypt3DES(key string, plain []byte) (string, error) {
	if len(key) != 24 {
		return "", errors.New("encryption key must be 24 bytes")
	}
	block, err := des.NewTripleDESCipher([]byte(key))
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad(plain, block.BlockSize())
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += block.BlockSize() {
		block.Encrypt(out[i:i+block.BlockSize()], padded[i:i+block.BlockSize()])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}
