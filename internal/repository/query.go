package repository

import (
	"errors"
	"log/slog"
)

const (
	IDField        QueryField = "id"
	NameField      QueryField = "name"
	EmailField     QueryField = "email"
	CategoryField  QueryField = "category"
	CreatedAtField QueryField = "created_at"
)

// Query describes optional filters, a row limit, and cursor pagination state
// for a List call. The zero limit means "no limit".
type Query struct {
	Values map[QueryField]string

	Limit int

	Paginator *Paginator
}

type QueryField string

func NewQuery() *Query {
	return &Query{
		Values: map[QueryField]string{},
	}
}

func (q *Query) With(field QueryField, val string) *Query {
	q.Values[field] = val
	return q
}

// ApplyPagination caps the limit and decodes the cursor token if present.
// Without a positive limit the query stays unbounded, which is how the
// product listing returns the whole catalog by default.
func (q *Query) ApplyPagination(limit int32, token string) error {
	if limit > 0 {
		q.Limit = min(maxPaginationLimit, int(limit))
	}

	if token == "" {
		return nil
	}

	paginator, err := DecodePageToken(token)
	if err != nil {
		slog.Error("failed to decode page token", slog.Any("err", err), slog.String("token", token))
		return errors.New("invalid page token")
	}
	q.Paginator = paginator
	return nil
}
