package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseLimit reads a positive integer limit query parameter, falling back
// to the default on absence or garbage.
func ParseLimit(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultValue
	}
	return limit
}

// ParseOptionalUint64 reads an optional uint64 query parameter. The second
// return value reports whether the parameter was present and valid.
func ParseOptionalUint64(c *gin.Context, name string) (uint64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
