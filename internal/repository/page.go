package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Filter is a case-insensitive substring match on Column.
type Filter struct {
	Column string
	Term   string
}

// Query selects one page of records. All filters and scopes must match.
type Query struct {
	Filters  []Filter
	Scopes   []func(*gorm.DB) *gorm.DB
	Preloads []string
	Page     int
	PerPage  int
}

// Contains adds a substring filter on column. Empty terms are ignored.
func (q Query) Contains(column, term string) Query {
	if term == "" {
		return q
	}
	q.Filters = append(q.Filters, Filter{Column: column, Term: term})
	return q
}

func (q Query) validate() error {
	if q.Page < 1 || q.PerPage < 1 {
		return fmt.Errorf("page %d / per_page %d: %w", q.Page, q.PerPage, ErrInvalidQuery)
	}
	return nil
}

func (q Query) offset() int64 {
	return int64(q.Page-1) * int64(q.PerPage)
}

func (q Query) apply(tx *gorm.DB) *gorm.DB {
	for _, f := range q.Filters {
		tx = tx.Where("LOWER("+f.Column+") LIKE ? ESCAPE '\\'", likePattern(f.Term))
	}
	return tx.Scopes(q.Scopes...)
}

// Page is a bounded slice of a larger result set.
type Page[T any] struct {
	Items   []T
	Total   int64
	Pages   int
	Page    int
	PerPage int
}

func newPage[T any](items []T, total int64, page, perPage int) *Page[T] {
	return &Page[T]{
		Items:   items,
		Total:   total,
		Pages:   int((total + int64(perPage) - 1) / int64(perPage)),
		Page:    page,
		PerPage: perPage,
	}
}

// MapPage converts the items of p with fn, keeping the metadata.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return &Page[U]{Items: out, Total: p.Total, Pages: p.Pages, Page: p.Page, PerPage: p.PerPage}
}
