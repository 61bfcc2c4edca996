package domain

// Snapshot is one delivery of a live query. Err is set when the query could
// not be evaluated; Items is then nil.
type Snapshot[T any] struct {
	Items []T
	Err   error
}
