package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads page and pageSize query parameters, clamping the
// size to maxSize.
func pageParams(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	pageSize = queryInt(c, "pageSize", defaultSize)
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}

	return page, pageSize
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
