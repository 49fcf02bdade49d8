package feed

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultPageSize is used when a builder is constructed without a positive page size.
const DefaultPageSize = 10

// Paginate resolves a raw page parameter against count items split into pages of pageSize.
// Empty or non-numeric input selects page 1 and values below 1 clamp to 1. Values past
// the end, including ones too large for an int, clamp to the last page.
// An empty collection still has one (empty) page.
func Paginate(count, pageSize int, raw string) (number, numPages int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	numPages = (count + pageSize - 1) / pageSize
	if numPages < 1 {
		numPages = 1
	}

	raw = strings.TrimSpace(raw)
	number, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		number = numPages
	case err != nil || number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}

	return number, numPages
}

// Offset returns the index of the first item on page number.
func Offset(number, pageSize int) int {
	if number < 1 {
		return 0
	}
	return (number - 1) * pageSize
}
