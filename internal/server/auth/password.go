package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the cost the rest of the deployment has always
// used for account passwords.
const DefaultBcryptCost = 10

// Hasher produces and verifies salted bcrypt password hashes. The cost
// factor is fixed at construction.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password. A fresh random salt is generated
// on every call and embedded in the returned value.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. The comparison runs in
// constant time; a malformed hash is treated as a mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
