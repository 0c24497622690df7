package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

func testFindings() []domain.Finding {
	return []domain.Finding{
		{ID: "fn-1", Rule: "button-name", Impact: domain.ImpactCritical, Selector: "#checkout > button"},
		{ID: "fn-2", Rule: "image-alt", Impact: domain.ImpactSerious, Selector: "img.hero"},
		{ID: "fn-3", Rule: "color-contrast", Impact: domain.ImpactMinor, Selector: ".footer a"},
	}
}

func TestNewFindingList(t *testing.T) {
	l := NewFindingList(styles.DefaultStyles())

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 80, l.width)
	assert.Equal(t, 10, l.height)
}

func TestNewFindingList_NilStyles(t *testing.T) {
	l := NewFindingList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
}

func TestFindingList_SetFindings(t *testing.T) {
	l := NewFindingList(nil)
	l.SetSelected(0)

	l.SetFindings(testFindings())

	assert.Equal(t, 3, l.Count())
	assert.False(t, l.IsEmpty())
	// Selection resets on new data
	assert.Equal(t, 0, l.Selected())
}

func TestFindingList_Navigation(t *testing.T) {
	l := NewFindingList(nil)
	l.SetFindings(testFindings())

	l.MoveDown()
	assert.Equal(t, 1, l.Selected())

	l.MoveDown()
	l.MoveDown() // Past the end stays at the last item
	assert.Equal(t, 2, l.Selected())

	l.MoveUp()
	assert.Equal(t, 1, l.Selected())
}

func TestFindingList_Update_Keys(t *testing.T) {
	l := NewFindingList(nil)
	l.SetFindings(testFindings())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Selected())
}

func TestFindingList_SelectedFinding(t *testing.T) {
	l := NewFindingList(nil)

	assert.Nil(t, l.SelectedFinding())

	l.SetFindings(testFindings())
	l.SetSelected(1)

	finding := l.SelectedFinding()
	require.NotNil(t, finding)
	assert.Equal(t, "fn-2", finding.ID)
}

func TestFindingList_SetSelected_OutOfRange(t *testing.T) {
	l := NewFindingList(nil)
	l.SetFindings(testFindings())

	l.SetSelected(99)
	assert.Equal(t, 0, l.Selected())

	l.SetSelected(-1)
	assert.Equal(t, 0, l.Selected())
}

func TestFindingList_View_Empty(t *testing.T) {
	l := NewFindingList(nil)

	assert.Contains(t, l.View(), "No findings")
}

func TestFindingList_View(t *testing.T) {
	l := NewFindingList(nil)
	l.SetDimensions(80, 20)
	l.SetFindings(testFindings())

	out := l.View()

	assert.Contains(t, out, "Findings (3)")
	assert.Contains(t, out, "button-name")
	assert.Contains(t, out, "#checkout > button")
	assert.Contains(t, out, "critical")
}

func TestFindingList_View_TruncatesLongRule(t *testing.T) {
	l := NewFindingList(nil)
	l.SetDimensions(40, 20)
	long := domain.Finding{
		ID:     "fn-long",
		Rule:   "a-very-long-rule-name-that-does-not-fit-in-the-available-width",
		Impact: domain.ImpactModerate,
	}
	l.SetFindings([]domain.Finding{long})

	assert.Contains(t, l.View(), "...")
}
