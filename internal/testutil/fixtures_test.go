package testutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixtures_SortedAndUnique(t *testing.T) {
	names := make([]string, len(Fixtures))
	for i, f := range Fixtures {
		names[i] = f.Name
		assert.Equal(t, f.Name, f.Metadata.Slug, "fixture name matches slug")
		assert.Len(t, f.Digest, 64, f.Name)
	}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Len(t, Articles(), len(Fixtures))
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("iran-history")
	assert.True(t, ok)
	assert.Equal(t, "history", f.Theme)

	_, ok = Lookup("missing")
	assert.False(t, ok)
}

func TestRecords_Order(t *testing.T) {
	records := Records()
	assert.Equal(t, "army-reform", records[0].Slug)
	assert.Equal(t, "untitled", records[len(records)-1].Slug)
}
