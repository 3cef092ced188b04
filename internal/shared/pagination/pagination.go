package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params is a page/limit pair read from the query string.
type Params struct {
	Page  int
	Limit int
}

// Defaults bounds the limit query parameter.
type Defaults struct {
	PageSize int
	MaxLimit int
}

// FromQuery reads ?page= and ?limit=. Out-of-range or malformed values fall
// back to page 1 and the default page size; limit is capped at MaxLimit.
func FromQuery(c *gin.Context, d Defaults) Params {
	return Normalize(atoi(c.Query("page")), atoi(c.Query("limit")), d)
}

// Normalize clamps page and limit into range.
func Normalize(page, limit int, d Defaults) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = d.PageSize
	}
	if limit < 1 {
		limit = 1
	}
	if d.MaxLimit > 0 && limit > d.MaxLimit {
		limit = d.MaxLimit
	}
	// Keep the offset within a Postgres int4-sized window.
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
