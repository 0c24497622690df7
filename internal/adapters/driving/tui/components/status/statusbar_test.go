package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/keymap"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.FindingCount())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilDefaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_View_Scanning(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateScanning)

	assert.Contains(t, bar.View(), "Scanning...")
}

func TestBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("engine unreachable")

	assert.Contains(t, bar.View(), "Error: engine unreachable")
}

func TestBar_View_FindingCount(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetFindingCount(7)

	assert.Contains(t, bar.View(), "7 findings")
}

func TestBar_View_FindingsStateHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateFindings)
	bar.SetFindingCount(3)
	bar.SetWidth(120)

	out := bar.View()

	// Findings state shows the resolve hint
	assert.Contains(t, out, "resolve")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetFindingCount(5)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.FindingCount())
}
