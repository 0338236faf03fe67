package services

import (
	"math"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/models/dtos"
)

// maxPage keeps (page-1)*pageSize within int for every allowed page size
const maxPage = math.MaxInt / constants.MaxPageSize

// Pagination is a 1-indexed page request
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination clamps page and size to sane bounds
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) normalized() Pagination {
	return NewPagination(p.Page, p.PageSize)
}

func (p Pagination) ListOptions() repositories.ListOptions {
	n := p.normalized()
	return repositories.ListOptions{Limit: n.PageSize, Offset: (n.Page - 1) * n.PageSize}
}

func newPage[T any](p Pagination, items []T, total int64) *dtos.Page[T] {
	n := p.normalized()
	if items == nil {
		items = []T{}
	}
	return &dtos.Page[T]{Items: items, Page: n.Page, PageSize: n.PageSize, Total: total}
}

// pageOf slices an in-memory list, used for cached reference data
func pageOf[T any](p Pagination, all []T) *dtos.Page[T] {
	opts := p.ListOptions()
	start := opts.Offset
	if start < 0 {
		start = 0
	}
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.Limit
	if end > len(all) {
		end = len(all)
	}
	return newPage(p, all[start:end], int64(len(all)))
}
