package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrSealedToken = errors.New("sealed token could not be opened")

const nonceSize = 24

func GenerateSessionToken() (string, error) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(key), nil
}

// Keyring holds the keys derived from the session secret: one for hashing
// session tokens into store ids and one for sealing backend tokens at rest.
type Keyring struct {
	hashKey []byte
	boxKey  [32]byte
}

func NewKeyring(secret string) *Keyring {
	return &Keyring{
		hashKey: []byte(secret),
		boxKey:  sha256.Sum256([]byte("moibook/seal/" + secret)),
	}
}

func (k *Keyring) HashSessionToken(token string) string {
	h := hmac.New(sha256.New, k.hashKey)
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// Seal encrypts plain with a fresh random nonce, stored in front of the box.
func (k *Keyring) Seal(plain string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(plain), &nonce, &k.boxKey), nil
}

func (k *Keyring) Open(box []byte) (string, error) {
	if len(box) < nonceSize+secretbox.Overhead {
		return "", ErrSealedToken
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &k.boxKey)
	if !ok {
		return "", ErrSealedToken
	}
	return string(plain), nil
}
