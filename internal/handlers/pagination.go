package handlers

import (
	"fmt"
	"strconv"

	"parcelpro/internal/apperr"
)

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("%w: currentPage must be a positive integer", apperr.Invalid)
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, fmt.Errorf("%w: limit must be a positive integer", apperr.Invalid)
		}
		limit = l
	}

	return page, limit, nil
}
