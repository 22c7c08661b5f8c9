package shared

import "github.com/blogicum-next/internal/constants"

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	return NormalizePaginationWithDefault(page, pageSize, constants.DefaultPageSize)
}

// NormalizePaginationWithDefault 归一化分页参数，默认页大小由调用方给出
func NormalizePaginationWithDefault(page, pageSize, defaultPageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if defaultPageSize <= 0 {
		defaultPageSize = constants.DefaultPageSize
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}
