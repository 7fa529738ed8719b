package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(url.Values{})
	assert.Equal(t, 15, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset)
}

func TestParsePaginationClampsLimit(t *testing.T) {
	p := ParsePagination(url.Values{"limit": {"100"}})
	assert.Equal(t, 30, p.Limit)

	p = ParsePagination(url.Values{"limit": {"-5"}})
	assert.Equal(t, 15, p.Limit)

	p = ParsePagination(url.Values{"limit": {"garbage"}})
	assert.Equal(t, 15, p.Limit)
}

func TestParsePaginationOffset(t *testing.T) {
	p := ParsePagination(url.Values{"limit": {"10"}, "page": {"3"}})
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Offset)
}

func TestComputeMeta(t *testing.T) {
	p := ParsePagination(url.Values{"limit": {"10"}, "page": {"2"}})
	p.ComputeMeta(25)

	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := ParsePagination(url.Values{"limit": {"10"}, "page": {"3"}})
	last.ComputeMeta(25)
	assert.False(t, last.HasNext)
}
