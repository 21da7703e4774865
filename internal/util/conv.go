package util

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// QueryInt reads an integer query parameter, falling back to def when it is
// missing or malformed.
func QueryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return def
	}
	return v
}

// Pagination returns a 1-based page and a limit clamped to MaxPageSize.
func Pagination(c *gin.Context) (page, limit int) {
	page = QueryInt(c, "page", 1)
	limit = QueryInt(c, "limit", DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
