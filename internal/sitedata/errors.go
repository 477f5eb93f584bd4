package sitedata

import "errors"

var (
	// ErrFileNotFound is returned when the configs directory, or a file
	// or directory a config entry points to, doesn't exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse is returned when a configuration file, data file, or
	// markdown page can't be decoded, or decodes into something that
	// isn't valid site data.
	ErrParse = errors.New("parse error")

	// ErrDuplicateKey is returned when two records of the same kind claim
	// the same id, or two config entries claim the same name. Duplicates
	// are always rejected; the loader never picks a winner.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when an id is looked up, or referenced by
	// another record, and no record with that id exists.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when records are individually valid but
	// contradict each other or themselves, like a session that ends
	// before it starts.
	ErrConflict = errors.New("conflicting site data")
)
