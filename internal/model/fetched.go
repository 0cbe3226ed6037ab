package model

// Fetched carries the outcome of a provider call. A failed call keeps the
// zero Value and a non-nil Err; callers must check Ok before using Value.
type Fetched[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the fetch succeeded.
func (f Fetched[T]) Ok() bool { return f.Err == nil }

// Succeeded wraps a successful result.
func Succeeded[T any](v T) Fetched[T] { return Fetched[T]{Value: v} }

// Failed wraps a failed result.
func Failed[T any](err error) Fetched[T] { return Fetched[T]{Err: err} }
