package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvesearch/core"
)

// TestName_RoundTrip checks that every index maps to a name and back.
func TestName_RoundTrip(t *testing.T) {
	for i := 0; i < core.MaxName; i++ {
		n := core.NameFromIndex(i)
		require.True(t, n.Valid(), "index %d produced %q", i, n)
		require.Equal(t, i, n.Index())
	}
}

func TestName_Bounds(t *testing.T) {
	assert.Equal(t, "AA", core.NameFromIndex(0).String())
	assert.Equal(t, "AZ", core.NameFromIndex(25).String())
	assert.Equal(t, "BA", core.NameFromIndex(26).String())
	assert.Equal(t, "ZZ", core.NameFromIndex(core.MaxName-1).String())
	assert.Panics(t, func() { core.NameFromIndex(core.MaxName) })
	assert.Panics(t, func() { core.NameFromIndex(-1) })
}

func TestParseName(t *testing.T) {
	n, err := core.ParseName("QX")
	require.NoError(t, err)
	assert.Equal(t, "QX", n.String())

	for _, bad := range []string{"", "A", "AAA", "aa", "A1", "Ä"} {
		_, err := core.ParseName(bad)
		assert.ErrorIs(t, err, core.ErrInvalidName, "input %q", bad)
	}
	assert.Panics(t, func() { core.MustName("zz") })
}

func TestNameMap_Basics(t *testing.T) {
	var m core.NameMap[int]
	assert.True(t, m.IsEmpty())

	m.Insert(core.MustName("CC"), 3)
	m.Insert(core.MustName("AA"), 1)
	m.Insert(core.MustName("AA"), 10)
	assert.Equal(t, 2, m.Len())

	v, ok := m.Get(core.MustName("AA"))
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = m.Get(core.MustName("BB"))
	assert.False(t, ok)
	assert.Nil(t, m.Ptr(core.MustName("BB")))

	// keys come back in name order, not insertion order
	assert.Equal(t, []core.Name{core.MustName("AA"), core.MustName("CC")}, m.Keys())

	m.Delete(core.MustName("AA"))
	m.Delete(core.MustName("AA"))
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.Contains(core.MustName("AA")))
}

func TestNameMap_ValueSemantics(t *testing.T) {
	var a core.NameSet
	a.Insert(core.MustName("AA"), struct{}{})

	b := a
	b.Insert(core.MustName("BB"), struct{}{})

	assert.Equal(t, 1, a.Len())
	assert.False(t, a.Contains(core.MustName("BB")))
	assert.Equal(t, 2, b.Len())
}

func TestNameMap_AllStopsEarly(t *testing.T) {
	var m core.NameMap[string]
	for _, s := range []string{"ZZ", "MM", "AA"} {
		m.Insert(core.MustName(s), s)
	}

	var seen []string
	for name, v := range m.All() {
		assert.Equal(t, name.String(), v)
		seen = append(seen, v)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"AA", "MM"}, seen)
}

func TestGraph_AddValve(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddValve(core.Valve{Name: core.MustName("BB"), Flow: 2, Links: []core.Name{core.MustName("AA")}}))
	require.NoError(t, g.AddValve(core.Valve{Name: core.MustName("AA")}))

	err := g.AddValve(core.Valve{Name: core.MustName("AA")})
	assert.ErrorIs(t, err, core.ErrDuplicateValve)

	err = g.AddValve(core.Valve{Name: core.Name{'a', 'a'}})
	assert.ErrorIs(t, err, core.ErrInvalidName)

	err = g.AddValve(core.Valve{Name: core.MustName("CC"), Links: []core.Name{{'1', '2'}}})
	assert.ErrorIs(t, err, core.ErrInvalidName)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []core.Name{core.MustName("BB"), core.MustName("AA")}, g.Names())
	assert.Equal(t, []core.Name{core.MustName("AA")}, g.Links(core.MustName("BB")))
	assert.Nil(t, g.Links(core.MustName("ZZ")))
	assert.True(t, g.HasValve(core.MustName("AA")))
}
