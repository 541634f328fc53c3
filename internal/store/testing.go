package store

import "database/sql"

// NewTestStore creates a Store over an already-open database and runs
// the migrations. Only intended for use in tests, with an in-memory
// sqlite connection.
func NewTestStore(db *sql.DB) (*Store, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}
