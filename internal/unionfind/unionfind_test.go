package unionfind

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionMergesGroups(t *testing.T) {
	t.Parallel()

	uf := New()
	uf.Union("a", "b")
	uf.Union("b", "c")
	uf.Find("d")

	assert.Equal(t, uf.Find("a"), uf.Find("c"))
	assert.NotEqual(t, uf.Find("a"), uf.Find("d"))

	groups := uf.Groups()
	var members []string
	for _, g := range groups {
		if len(g) == 3 {
			members = append(members, g...)
		}
	}
	sort.Strings(members)
	assert.Equal(t, []string{"a", "b", "c"}, members)
}

func TestFindIsIdempotent(t *testing.T) {
	t.Parallel()

	uf := New()
	assert.Equal(t, "solo", uf.Find("solo"))
	assert.Equal(t, "solo", uf.Find("solo"))
}
