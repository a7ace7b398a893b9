// Package store adapts the SurrealDB client to the typed collection handles
// the repositories are written against. A collection is addressed by a
// logical (database, collection) pair; both map onto a single SurrealDB
// namespace with `<database>_<collection>` table names, and every database
// has a reserved "archive" collection.
package store

import (
	"github.com/pkg/errors"
	"github.com/surrealdb/surrealdb.go"

	"github.com/andreishark/api-backend-ecommerce/config"
)

// ArchiveCollectionName is the reserved per-database archive collection.
const ArchiveCollectionName = "archive"

type Store struct {
	db *surrealdb.DB
}

// Connect dials the SurrealDB endpoint, signs in and selects the configured
// namespace. The namespace doubles as the SurrealDB database name; logical
// database names from the repositories only prefix table names.
func Connect(cfg config.DBConfig) (*Store, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "store: connect")
	}

	if _, err := db.Signin(map[string]any{
		"user": cfg.User,
		"pass": cfg.Passwd,
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: signin")
	}

	if _, err := db.Use(cfg.Namespace, cfg.Namespace); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: use namespace")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

// GetCollection returns a typed handle on `<database>_<collection>`.
func GetCollection[T any](s *Store, database, collection string) *Collection[T] {
	return &Collection[T]{db: s.db, table: database + "_" + collection}
}

// GetArchiveCollection returns the typed handle on the database's reserved
// archive collection.
func GetArchiveCollection[T any](s *Store, database string) *Collection[T] {
	return GetCollection[T](s, database, ArchiveCollectionName)
}
