package security

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is used when the configured work factor is out of the
// range bcrypt accepts.
const DefaultBcryptCost = 12

// HashPassword salts and hashes pw. bcrypt embeds a fresh random salt in
// the digest, so equal passwords never produce equal digests.
func HashPassword(pw string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// CheckPassword reports whether pw matches the stored digest. A malformed
// digest is just a mismatch, never an error for the caller.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
