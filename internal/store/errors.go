package store

import "errors"

// IsNotFound reports whether err is one of the store's not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGenreNotFound) || errors.Is(err, ErrBookNotFound)
}

// IsAlreadyExists reports whether err is one of the store's already-exists
// sentinels.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrGenreExists) || errors.Is(err, ErrBookExists)
}
