package user

import "fmt"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	// NeedsRehash reports whether hash was produced with parameters other
	// than the ones the hasher currently uses.
	NeedsRehash(hash string) bool
}

func (u *User) VerifyPassword(plainPassword string, hasher PasswordHasher) error {
	if u.passwordHash == "" {
		return fmt.Errorf("user has no password set")
	}
	if !u.isActive {
		return fmt.Errorf("user is inactive")
	}
	if err := hasher.Verify(plainPassword, u.passwordHash); err != nil {
		return fmt.Errorf("invalid password")
	}
	return nil
}

// ReplacePasswordHash stores a new hash of the same password, typically
// after the configured hashing cost changed.
func (u *User) ReplacePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = hash
	return nil
}
