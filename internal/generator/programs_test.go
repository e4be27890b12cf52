package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearCounts(t *testing.T) {
	cases := []struct {
		n    int
		want [4]int
	}{
		{0, [4]int{0, 0, 0, 0}},
		{1, [4]int{0, 1, 0, 0}},
		{4, [4]int{1, 1, 1, 1}},
		{6, [4]int{2, 1, 2, 1}},
		{8, [4]int{2, 2, 2, 2}},
		{10, [4]int{3, 3, 2, 2}},
	}
	for _, tc := range cases {
		got := yearCounts(tc.n)

		sum := 0
		for _, c := range got {
			sum += c
		}
		assert.Equal(t, tc.n, sum, "n=%d must distribute every subject", tc.n)
		assert.Equal(t, tc.want, got, "n=%d", tc.n)
	}
}
