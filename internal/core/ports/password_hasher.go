package ports

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns errs.ErrCredentialsAreInvalid on mismatch.
	Compare(hash string, password string) error
}
