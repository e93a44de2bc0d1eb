package models

import "math"

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of rows skipped before this page. It saturates at math.MaxInt.
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

type PaginatedResult[T any] struct {
	Documents  []T `json:"documents"`
	TotalItems int `json:"totalItems"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// NewPaginatedResult computes TotalPages as ceil(total / limit).
func NewPaginatedResult[T any](docs []T, total int, page Page) PaginatedResult[T] {
	if docs == nil {
		docs = make([]T, 0)
	}
	totalPages := 0
	if page.Limit > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return PaginatedResult[T]{
		Documents:  docs,
		TotalItems: total,
		Page:       page.Number,
		TotalPages: totalPages,
	}
}
