package services

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordRequired is returned before any hashing or persistence when
// the password is empty.
var ErrPasswordRequired = errors.New("password must be non-empty")

// Credentials hashes and verifies passwords with bcrypt.
type Credentials struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCredentials creates Credentials hashing at the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

// prehash digests password to a fixed 44 bytes, under bcrypt's 72 byte
// input limit, so passwords of any length hash and stay distinct.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Hash returns the salted bcrypt hash of password.
func (c *Credentials) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), c.cost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}

// Verify reports whether password matches hash.
func (c *Credentials) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)) == nil
}

// Burn spends the same time as a failed Verify so that an unknown username
// cannot be told apart from a wrong password by timing.
func (c *Credentials) Burn(password string) {
	c.dummyOnce.Do(func() {
		c.dummyHash, _ = bcrypt.GenerateFromPassword(prehash("warbler"), c.cost)
	})
	_ = bcrypt.CompareHashAndPassword(c.dummyHash, prehash(password))
}
