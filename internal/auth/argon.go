// Package auth provides the argon2id password hasher used for account
// credentials.
package auth

import (
	"github.com/alexedwards/argon2id"
)

type Argon2Hasher struct {
	params *argon2id.Params
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{params: argon2id.DefaultParams}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

func (h *Argon2Hasher) Verify(password, encoded string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password, encoded)
	return err == nil && ok
}
