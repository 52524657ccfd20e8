package service

import (
	"time"

	"github.com/golfcompete/golf-server/internal/query"
)

// Status represents the terminal outcome of a service operation
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Response represents the uniform envelope returned by every service operation.
// Exactly one of Data and Error is set on a terminal response.
type Response[T any] struct {
	Status    Status    `json:"status"`
	Data      *T        `json:"data"`
	Error     *Error    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Metadata represents the pagination metadata attached to a Paginated response
type Metadata struct {
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	Total      uint64 `json:"total"`
	TotalPages uint64 `json:"totalPages"`
	HasMore    bool   `json:"hasMore"`
}

// Paginated represents the envelope returned by listing operations
type Paginated[T any] struct {
	Status    Status   `json:"status"`
	Data      []T      `json:"data"`
	Error     *Error   `json:"error"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata `json:"metadata"`
}

// OK builds a success envelope around the given data
func OK[T any](data T) *Response[T] {
	return &Response[T]{
		Status:    StatusSuccess,
		Data:      &data,
		Timestamp: time.Now().UTC(),
	}
}

// Fail builds an error envelope around the given service error
func Fail[T any](err *Error) *Response[T] {
	return &Response[T]{
		Status:    StatusError,
		Error:     err,
		Timestamp: time.Now().UTC(),
	}
}

// Page builds a success envelope around one page of data.
// This is the only place the totalPages & hasMore values are computed so they can never drift
// between callers: totalPages = ceil(total/limit), hasMore = page < totalPages.
func Page[T any](data []T, total uint64, pagination query.Pagination) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := total / pagination.Limit
	if total%pagination.Limit != 0 {
		totalPages++
	}
	return &Paginated[T]{
		Status:    StatusSuccess,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Metadata: Metadata{
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    pagination.Page < totalPages,
		},
	}
}

// FailPage builds an error-shaped paginated envelope with zeroed totals.
// Listing operations return this instead of failing outright so callers can render an empty
// result uniformly without branching on exceptions.
func FailPage[T any](err *Error, pagination query.Pagination) *Paginated[T] {
	return &Paginated[T]{
		Status:    StatusError,
		Error:     err,
		Timestamp: time.Now().UTC(),
		Metadata: Metadata{
			Page:  pagination.Page,
			Limit: pagination.Limit,
		},
	}
}
