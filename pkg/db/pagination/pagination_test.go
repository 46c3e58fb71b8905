package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pagination{}.Normalize(10, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, Limit: 500}.Normalize(10, 100)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(Pagination{Page: 2, Limit: 10}, 21)
	assert.Equal(t, Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, meta)

	empty := BuildMeta(Pagination{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestOffsetSaturatesInsteadOfWrapping(t *testing.T) {
	p := Pagination{Page: math.MaxInt64 / 5, Limit: 10}
	assert.Equal(t, math.MaxInt, p.Offset())

	p = Pagination{Page: math.MaxInt, Limit: 1}
	assert.Equal(t, math.MaxInt-1, p.Offset())

	assert.Equal(t, 0, Pagination{Page: 5}.Offset())
}
