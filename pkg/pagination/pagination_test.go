package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClamps(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: DefaultLimit}, New(0, 0))
	assert.Equal(t, Page{Page: 3, Limit: MaxLimit}, New(3, 1000))
	assert.Equal(t, 20, New(3, 10).Offset())
}

func TestPagesConcatenateToFullSet(t *testing.T) {
	all := make([]int, 23)
	for i := range all {
		all[i] = i
	}
	for _, limit := range []int{1, 4, 7, 10, 23, 50} {
		res := NewResult(Slice(all, New(1, limit)), len(all), New(1, limit))
		var got []int
		for page := 1; page <= res.TotalPages; page++ {
			p := New(page, limit)
			items := Slice(all, p)
			require.LessOrEqual(t, len(items), limit)
			got = append(got, items...)
		}
		assert.Equal(t, all, got, "limit=%d", limit)
	}
}

func TestSlicePastEnd(t *testing.T) {
	assert.Empty(t, Slice([]string{"a"}, New(5, 10)))
	res := NewResult[string](nil, 0, New(1, 10))
	assert.NotNil(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off\_now%`, LikePattern(" 50% off_now "))
	assert.Equal(t, `%a\\b%`, LikePattern(`a\b`))
}
