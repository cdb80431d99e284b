package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(url string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPageParamsDefaults(t *testing.T) {
	page, size := PageParams(testContext("/customers"))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestPageParamsExplicit(t *testing.T) {
	page, size := PageParams(testContext("/customers?page=3&page_size=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)
}

func TestPageParamsClampsOversize(t *testing.T) {
	_, size := PageParams(testContext("/customers?page_size=5000"))
	assert.Equal(t, MaxPageSize, size)
}

func TestPageParamsRejectsGarbage(t *testing.T) {
	page, size := PageParams(testContext("/customers?page=-2&page_size=abc"))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
}
