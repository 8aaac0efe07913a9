package dto

import (
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/campulist/campulist/internal/pkg/helpers"
)

// ErrorPayload is the failure half of Result.
type ErrorPayload struct {
	Code    apperrors.Kind `json:"code"`
	Message string         `json:"message"`
}

// Result is the uniform outcome of every API operation. Exactly one of Data
// and Error is meaningful, selected by OK.
type Result[T any] struct {
	OK    bool          `json:"ok"`
	Data  T             `json:"data,omitempty"`
	Error *ErrorPayload `json:"error,omitempty"`
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Failure builds a failed Result.
func Failure[T any](kind apperrors.Kind, message string) Result[T] {
	return Result[T]{Error: &ErrorPayload{Code: kind, Message: message}}
}

// ListResult is a paginated listing.
type ListResult[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewListResult copies pagination metadata from page.
func NewListResult[T any](page helpers.Page[T]) ListResult[T] {
	return ListResult[T]{
		Items:   page.Items,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: page.HasMore,
	}
}

// MapList converts the items of a listing while keeping its metadata.
func MapList[T, U any](in ListResult[T], fn func(T) U) ListResult[U] {
	out := ListResult[U]{
		Items:   make([]U, 0, len(in.Items)),
		Total:   in.Total,
		Limit:   in.Limit,
		Offset:  in.Offset,
		HasMore: in.HasMore,
	}
	for _, item := range in.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}
