// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read straight from the tables into
// read models shaped for the API.
package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
	// MaxPage keeps Offset within a Postgres integer for any page size.
	MaxPage         = math.MaxInt32 / MaxPageSize
	DefaultSortBy   = SortByCreatedAt
	DefaultSortDir  = SortDesc
)

// SortBy names a sortable order column as it appears in the API.
type SortBy string

const (
	SortByCreatedAt SortBy = "createdAt"
	SortByUpdatedAt SortBy = "updatedAt"
	SortByStatus    SortBy = "status"
)

// SortDir is the direction of a paged listing.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

var sortColumns = map[SortBy]string{
	SortByCreatedAt: "created_at",
	SortByUpdatedAt: "updated_at",
	SortByStatus:    "status",
}

var ErrPageRequestIsNotConstructed = errors.New(
	"PageRequest must be created via NewPageRequest constructor",
)

// PageRequest selects one page of a sorted listing. Pages are zero based.
type PageRequest struct {
	page    int
	size    int
	sortBy  SortBy
	sortDir SortDir

	guard guard.ConstructorGuard
}

// DefaultPageRequest returns the first page of ten, newest first.
func DefaultPageRequest() PageRequest {
	return PageRequest{
		size:    DefaultPageSize,
		sortBy:  DefaultSortBy,
		sortDir: DefaultSortDir,
		guard:   guard.NewConstructorGuard(),
	}
}

// NewPageRequest validates paging parameters. Empty sortBy and sortDir fall
// back to their defaults; sort names are matched case-insensitively.
func NewPageRequest(page, size int, sortBy, sortDir string) (PageRequest, error) {
	r := DefaultPageRequest()

	var errList []error
	if page < 0 || page > MaxPage {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 0, MaxPage))
	}
	if size < 1 || size > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize))
	}
	if sortBy = strings.TrimSpace(sortBy); sortBy != "" {
		if s, ok := parseSortBy(sortBy); ok {
			r.sortBy = s
		} else {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"sortBy", fmt.Errorf("%q is not one of createdAt, updatedAt, status", sortBy),
			))
		}
	}
	if sortDir = strings.TrimSpace(sortDir); sortDir != "" {
		switch SortDir(strings.ToLower(sortDir)) {
		case SortAsc:
			r.sortDir = SortAsc
		case SortDesc:
			r.sortDir = SortDesc
		default:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"sortDir", fmt.Errorf("%q is not one of asc, desc", sortDir),
			))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return PageRequest{}, err
	}

	r.page = page
	r.size = size
	return r, nil
}

func parseSortBy(s string) (SortBy, bool) {
	for candidate := range sortColumns {
		if strings.EqualFold(string(candidate), s) {
			return candidate, true
		}
	}
	return "", false
}

// Validate ensures the request was created through the constructor.
func (r PageRequest) Validate() error {
	return r.guard.Validate(ErrPageRequestIsNotConstructed)
}

func (r PageRequest) Page() int        { return r.page }
func (r PageRequest) Size() int        { return r.size }
func (r PageRequest) SortBy() SortBy   { return r.sortBy }
func (r PageRequest) SortDir() SortDir { return r.sortDir }

// Offset is the number of rows skipped before the page.
func (r PageRequest) Offset() int {
	return r.page * r.size
}

// orderClause renders the ORDER BY for the request. The id tiebreaker keeps
// pages stable when sort values repeat.
func (r PageRequest) orderClause() string {
	dir := "DESC"
	if r.sortDir == SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s, id %s", sortColumns[r.sortBy], dir, dir)
}

// Page is one slice of a sorted listing plus the totals a client needs to
// walk the rest.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
	Last          bool
}

// NewPage derives the page totals from the row count.
func NewPage[T any](content []T, request PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	size := int64(request.Size())
	totalPages := int((total + size - 1) / size)

	return Page[T]{
		Content:       content,
		Page:          request.Page(),
		Size:          request.Size(),
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          request.Page() >= totalPages-1,
	}
}
