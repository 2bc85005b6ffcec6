package repository

import "errors"

var (
	// ErrSchemaDrift means a record no longer has the shape the mapper expects.
	ErrSchemaDrift = errors.New("database schema drift")
)
