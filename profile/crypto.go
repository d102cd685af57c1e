package profile

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeyEnv names the environment variable holding the base64-encoded 32-byte
// profile encryption key. When encryption is enabled and the variable is
// unset, a fresh key is generated and cached in the process environment,
// matching first-run behavior: profiles written then are only readable for
// the lifetime of that key.
const KeyEnv = "DOCUFILL_PROFILE_KEY"

type box struct {
	key [32]byte
}

func openBox() (*box, error) {
	encoded := os.Getenv(KeyEnv)
	if encoded == "" {
		var key [32]byte
		if _, err := rand.Read(key[:]); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		if err := os.Setenv(KeyEnv, base64.StdEncoding.EncodeToString(key[:])); err != nil {
			return nil, fmt.Errorf("cache key: %w", err)
		}
		return &box{key: key}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyEnv, err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("%s must decode to 32 bytes, got %d", KeyEnv, len(raw))
	}
	b := &box{}
	copy(b.key[:], raw)
	return b, nil
}

// seal encrypts data with a random nonce prepended to the ciphertext.
func (b *box) seal(data []byte) []byte {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		// rand.Read on supported platforms never fails.
		panic(err)
	}
	return secretbox.Seal(nonce[:], data, &nonce, &b.key)
}

// open decrypts sealed data produced by seal.
func (b *box) open(sealed []byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("sealed profile too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, &b.key)
	if !ok {
		return nil, fmt.Errorf("decryption failed")
	}
	return plain, nil
}
