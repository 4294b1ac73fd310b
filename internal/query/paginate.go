package query

import "fmt"

// Pagination bounds enforced at the HTTP boundary.
const (
	MinLimit = 1
	MaxLimit = 1000
)

var (
	errPage  = fmt.Errorf("page must be >= 1")
	errLimit = fmt.Errorf("limit must be between %d and %d", MinLimit, MaxLimit)
)

// PageRequest is a validated pagination request.
type PageRequest struct {
	Page  int // 1-based
	Limit int // rows per page, within [MinLimit, MaxLimit]
}

// Validate checks the request against the pagination bounds.
func (r PageRequest) Validate() error {
	if r.Page < 1 {
		return errPage
	}
	if r.Limit < MinLimit || r.Limit > MaxLimit {
		return errLimit
	}
	return nil
}

// Offset returns the row offset for the request.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// TotalPages returns ceil(total/limit), and 0 when total is 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
