package http

import (
	"net/http"
	"strconv"

	apperrors "bookit/pkg/errors"
)

const maxPaginationLimit = 100

// ExtractLimitOffset parses and normalizes pagination query parameters.
func ExtractLimitOffset(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	offset := 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	if limit <= 0 {
		limit = 10
	} else if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
