package confstore

import "errors"

var (
	// ErrResourceNotFound is returned when the backing config file does not
	// exist. The store never creates resources.
	ErrResourceNotFound = errors.New("config resource not found")

	// ErrKeyNotFound is returned by Get when no active line carries the key.
	// It is distinct from a key configured to an empty value.
	ErrKeyNotFound = errors.New("key not found")
)
