package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination parses the offset and limit query parameters.
// Defaults are offset=0 and limit=50; limit cannot exceed 100.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and 100")
	}

	return offset, limit, nil
}

// RequiredQuery returns the named query parameter. The parameter must be present
// but may be empty, since empty principals and labels are legitimate keys.
func RequiredQuery(c *gin.Context, name string) (string, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return "", fmt.Errorf("missing %s query parameter", name)
	}
	return value, nil
}
