package helper_util_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	helper_util "github.com/sakethdamerla/li-hrms-sub003/util/helper"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	limit, offset, err := helper_util.GetPaginationParams(contextWithQuery(""))

	assert.NoError(t, err)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}

func TestGetPaginationParams_Explicit(t *testing.T) {
	limit, offset, err := helper_util.GetPaginationParams(contextWithQuery("limit=25&offset=50"))

	assert.NoError(t, err)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)
}

func TestGetPaginationParams_Invalid(t *testing.T) {
	_, _, err := helper_util.GetPaginationParams(contextWithQuery("limit=ten"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	parsed, err := helper_util.ParseDate("2025-06-01")
	assert.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())

	_, err = helper_util.ParseDate("01-06-2025")
	assert.Error(t, err)
}
