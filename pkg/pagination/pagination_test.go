package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   Params
		want Params
	}{
		{Params{}, Params{Page: 0, Size: DefaultLimit}},
		{Params{Page: -3, Size: -1}, Params{Page: 0, Size: DefaultLimit}},
		{Params{Page: 2, Size: 500}, Params{Page: 2, Size: MaxLimit}},
		{Params{Page: 1, Size: 10}, Params{Page: 1, Size: 10}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.Normalize())
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{}.Offset())
	assert.Equal(t, 20, Params{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 0, Params{Page: -1, Size: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, Params{Page: 1, Size: 2}, 5)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 2, p.Size)

	assert.Equal(t, 0, NewPage([]int{}, Params{}, 0).TotalPages)
	assert.Equal(t, 1, NewPage([]int{1}, Params{Size: 10}, 10).TotalPages)
}

func TestMapKeepsMetadata(t *testing.T) {
	p := NewPage([]int{1, 2}, Params{Page: 0, Size: 2}, 4)
	out := Map(p, strconv.Itoa)
	assert.Equal(t, []string{"1", "2"}, out.Items)
	assert.Equal(t, p.Total, out.Total)
	assert.Equal(t, p.TotalPages, out.TotalPages)
}
