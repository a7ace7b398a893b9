package store

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/surrealdb/surrealdb.go"
)

// Collection is a typed handle on one table. Every operation is a single
// SurrealQL statement, so single-document mutations are atomic on the server
// side; there is no client-side compare-and-swap. Operations that target a
// missing id report it by returning a nil document, never an error.
//
// Update/replace/delete statements are table-scoped with a `WHERE id =`
// clause rather than record-scoped, because a record-scoped UPDATE would
// create the record when it does not exist.
type Collection[T any] struct {
	db    *surrealdb.DB
	table string
}

// Table reports the underlying table name.
func (c *Collection[T]) Table() string {
	return c.table
}

// Insert creates the document under the given record id. A duplicate id is
// rejected by the store's record-key uniqueness and surfaces as an error.
func (c *Collection[T]) Insert(ctx context.Context, id string, doc T) (*T, error) {
	data, err := contentMap(doc)
	if err != nil {
		return nil, err
	}
	rows, err := c.query(ctx,
		"CREATE type::thing($tb, $id) CONTENT $data",
		map[string]any{"tb": c.table, "id": id, "data": data})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("store: create on %s returned no document", c.table)
	}
	return &rows[0], nil
}

// All returns every document in the collection.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.query(ctx,
		"SELECT * FROM type::table($tb)",
		map[string]any{"tb": c.table})
}

// Get returns the document with the given id, or nil when absent. More than
// one match violates the id uniqueness invariant and is reported as an error
// instead of returning an arbitrary document.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	rows, err := c.query(ctx,
		"SELECT * FROM type::table($tb) WHERE id = type::thing($tb, $id)",
		map[string]any{"tb": c.table, "id": id})
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, errors.Errorf("store: %d documents on %s share id %s", len(rows), c.table, id)
	}
}

// Find returns the documents matching an equality conjunction over the given
// fields. Field names come from in-repo constants, never from user input.
func (c *Collection[T]) Find(ctx context.Context, filter map[string]any) ([]T, error) {
	fields := make([]string, 0, len(filter))
	for k := range filter {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	vars := map[string]any{"tb": c.table}
	conds := make([]string, 0, len(fields))
	for _, k := range fields {
		conds = append(conds, k+" = $w_"+k)
		vars["w_"+k] = filter[k]
	}

	return c.query(ctx,
		"SELECT * FROM type::table($tb) WHERE "+strings.Join(conds, " AND "),
		vars)
}

// Merge patches the named fields of the document with the given id and
// returns the post-update document, or nil when no document matched.
func (c *Collection[T]) Merge(ctx context.Context, id string, fields map[string]any) (*T, error) {
	rows, err := c.query(ctx,
		"UPDATE type::table($tb) MERGE $data WHERE id = type::thing($tb, $id) RETURN AFTER",
		map[string]any{"tb": c.table, "id": id, "data": fields})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Replace swaps the full content of the document with the given id, keeping
// the record id, and returns the post-replace document or nil when absent.
func (c *Collection[T]) Replace(ctx context.Context, id string, doc T) (*T, error) {
	data, err := contentMap(doc)
	if err != nil {
		return nil, err
	}
	rows, err := c.query(ctx,
		"UPDATE type::table($tb) CONTENT $data WHERE id = type::thing($tb, $id) RETURN AFTER",
		map[string]any{"tb": c.table, "id": id, "data": data})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Take atomically removes the document with the given id and returns its
// pre-delete content, or nil when no document matched.
func (c *Collection[T]) Take(ctx context.Context, id string) (*T, error) {
	rows, err := c.query(ctx,
		"DELETE type::table($tb) WHERE id = type::thing($tb, $id) RETURN BEFORE",
		map[string]any{"tb": c.table, "id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Collection[T]) query(ctx context.Context, sql string, vars map[string]any) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.db.Query(sql, vars)
	if err != nil {
		return nil, errors.Wrapf(err, "store: query on %s", c.table)
	}
	return decodeRows[T](c.table, res)
}
