package service

// PasswordHasher verifies the admin credential against its stored hash.
// The plaintext shared secret is never persisted or compared directly.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool
}
