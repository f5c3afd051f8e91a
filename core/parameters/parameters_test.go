package parameters

import (
	"strings"
	"testing"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.core")
	defer teardown()
	//
	regs := NewLayoutRegisters()
	assert.Equal(t, dimen.Dimen(210), regs.D(P_PAGEWIDTH))
	assert.Equal(t, 7.0, regs.F(P_FONTSIZE))
	assert.False(t, regs.B(P_CURSIVE))
	assert.Equal(t, "-", regs.S(P_HYPHENCHAR))
	assert.False(t, regs.IsSet(P_SPACEWIDTH))
	assert.InDelta(t, 1.75, float64(regs.SpaceWidth()), 1e-12)
	assert.InDelta(t, 1.4, float64(regs.PunctSpacing()), 1e-12)
	regs.Push(P_CHARSPACING, 0.5)
	assert.InDelta(t, 0.5, float64(regs.PunctSpacing()), 1e-12)
}

func TestGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.core")
	defer teardown()
	//
	regs := NewLayoutRegisters()
	regs.Begingroup()
	regs.Push(P_CURSIVE, true)
	regs.Begingroup()
	regs.Push(P_FONTSIZE, 10*dimen.MM)
	assert.True(t, regs.B(P_CURSIVE))
	assert.Equal(t, 10.0, regs.F(P_FONTSIZE))
	regs.Endgroup()
	assert.Equal(t, 7.0, regs.F(P_FONTSIZE))
	assert.True(t, regs.B(P_CURSIVE))
	regs.Endgroup()
	assert.False(t, regs.B(P_CURSIVE))
	regs.Endgroup() // no-op on base level
	assert.False(t, regs.B(P_CURSIVE))
}

func TestEmptyGroup(t *testing.T) {
	regs := NewLayoutRegisters()
	regs.Begingroup()
	regs.Begingroup()
	regs.Push(P_CURSIVE, true)
	regs.Endgroup()
	regs.Endgroup()
	regs.Push(P_FONTSIZE, 5*dimen.MM)
	assert.Equal(t, 5.0, regs.F(P_FONTSIZE), "push after closing all groups goes to base")
	assert.False(t, regs.B(P_CURSIVE))
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.core")
	defer teardown()
	//
	yml := `
page: A5 landscape
font_size: 10mm
space_width: 40%
char_spacing: 0.5
cursive: true
curvature: 0.25
feed_rate: 1200
flatten: 0.1mm
`
	regs, err := LoadConfig(strings.NewReader(yml), nil)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(210), regs.D(P_PAGEWIDTH))
	assert.Equal(t, dimen.Dimen(148), regs.D(P_PAGEHEIGHT))
	assert.InDelta(t, 4.0, float64(regs.SpaceWidth()), 1e-9)
	assert.InDelta(t, 0.5, regs.F(P_CHARSPACING), 1e-12)
	assert.True(t, regs.B(P_CURSIVE))
	assert.Equal(t, 0.25, regs.F(P_CURVATURE))
	assert.Equal(t, 1200.0, regs.F(P_FEEDRATE))
	assert.InDelta(t, 0.1, regs.F(P_FLATTEN), 1e-12)
}

func TestLoadConfigErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.core")
	defer teardown()
	//
	for _, yml := range []string{
		"page: napkin\n",
		"font_size: 50%\n",
		"space_width: wide\n",
		"curvature: -1\n",
		"colour: red\n",
	} {
		_, err := LoadConfig(strings.NewReader(yml), nil)
		assert.Error(t, err, yml)
		assert.Equal(t, core.EINVALID, core.Code(err), yml)
	}
}

func TestEmptyConfig(t *testing.T) {
	regs, err := LoadConfig(strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Equal(t, 7.0, regs.F(P_FONTSIZE))
}
