package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/document"
	"github.com/vk/attrinspect/internal/inspector"
	"github.com/vk/attrinspect/internal/registry"
	"github.com/vk/attrinspect/internal/testutil"
)

type fixture struct {
	ctx    context.Context
	screen tcell.SimulationScreen
	ctrl   *document.Controller
	doc    *document.Document
	win    *inspector.Window
	ui     *UI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx, _ := testutil.NewLoggerContext(t)
	schema, err := attrschema.Parse(strings.NewReader(testutil.SampleSchema))
	require.NoError(t, err)
	reg := registry.New()
	require.NoError(t, reg.PopulateFromSchema(ctx, schema))

	doc, err := document.ParseDOT("sample.gv", []byte(testutil.SampleDOT))
	require.NoError(t, err)
	ctrl := document.NewController()
	ctrl.SetCurrent(doc)
	win := inspector.New(ctx, reg, ctrl)
	win.Show()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(72, 16)
	t.Cleanup(screen.Fini)

	return &fixture{ctx: ctx, screen: screen, ctrl: ctrl, doc: doc, win: win, ui: New(ctx, screen, win)}
}

// line returns the text of screen row y without trailing blanks.
func (f *fixture) line(y int) string {
	width, _ := f.screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func (f *fixture) screenText() string {
	_, height := f.screen.Size()
	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		lines = append(lines, f.line(y))
	}
	return strings.Join(lines, "\n")
}

func (f *fixture) press(key tcell.Key) bool {
	return f.ui.HandleKey(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func (f *fixture) typeRune(r rune) bool {
	return f.ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (f *fixture) graphValue(kind attrschema.Kind, name string) string {
	v, _ := f.doc.Graph().Attr(kind, name)
	return v
}

func TestDraw_InitialScreen(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)

	// --- Act ---
	f.ui.Draw()

	// --- Assert ---
	assert.Equal(t, " Attributes of sample.gv", f.line(0))
	assert.Equal(t, " Graph Attributes │ Node Attributes │ Edge Attributes", f.line(1))
	assert.Equal(t, " rankdir  LR ▾", f.line(3))
	assert.Equal(t, " bgcolor", f.line(4))
	assert.Equal(t, " center   false ▾", f.line(5))
	assert.Contains(t, f.screenText(), "Sets direction of graph layout.")
	assert.Equal(t, helpText, f.line(15))
}

func TestHandleKey_Navigation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.press(tcell.KeyDown)
	assert.Equal(t, "bgcolor", f.ui.Selected())

	f.press(tcell.KeyUp)
	f.press(tcell.KeyUp)
	assert.Equal(t, "rankdir", f.ui.Selected(), "selection stops at the first row")

	f.press(tcell.KeyTab)
	assert.Equal(t, attrschema.KindNode, f.win.ActiveTab())
	assert.Equal(t, "shape", f.ui.Selected())

	f.press(tcell.KeyBacktab)
	f.press(tcell.KeyBacktab)
	assert.Equal(t, attrschema.KindEdge, f.win.ActiveTab())

	f.ui.Draw()
	assert.Equal(t, " arrowhead   normal ▾", f.line(3))
}

func TestHandleKey_CycleAndReset(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	f.press(tcell.KeyTab)

	// --- Act & Assert ---
	f.press(tcell.KeyRight)
	assert.Equal(t, "ellipse", f.graphValue(attrschema.KindNode, "shape"))

	f.press(tcell.KeyLeft)
	f.press(tcell.KeyLeft)
	assert.Equal(t, "circle", f.graphValue(attrschema.KindNode, "shape"))

	f.press(tcell.KeyDelete)
	_, declared := f.doc.Graph().Attr(attrschema.KindNode, "shape")
	assert.False(t, declared)

	f.ui.Draw()
	assert.Equal(t, " shape      ellipse ▾", f.line(3))
	assert.Equal(t, "shape reset to default.", f.line(15))
}

func TestHandleKey_CycleFreeFormShowsHint(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.press(tcell.KeyDown)

	f.press(tcell.KeyRight)
	f.ui.Draw()

	assert.Equal(t, "bgcolor is free-form, press Enter to edit.", f.line(15))
	assert.Empty(t, f.graphValue(attrschema.KindGraph, "bgcolor"))
}

func TestHandleKey_Edit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	f.press(tcell.KeyDown)

	// --- Act ---
	f.press(tcell.KeyEnter)
	for _, r := range "#fff" {
		assert.False(t, f.typeRune(r), "typing q-like runes while editing must not quit")
	}
	f.ui.Draw()
	editLine := f.line(4)
	f.press(tcell.KeyEnter)

	// --- Assert ---
	assert.Equal(t, " bgcolor  #fff_", editLine)
	assert.Equal(t, "#fff", f.graphValue(attrschema.KindGraph, "bgcolor"))
}

func TestHandleKey_EditCancelAndReject(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.press(tcell.KeyEnter)
	f.typeRune('q')
	assert.False(t, f.press(tcell.KeyEscape), "Esc while editing cancels instead of quitting")
	assert.Equal(t, "LR", f.graphValue(attrschema.KindGraph, "rankdir"))

	f.press(tcell.KeyEnter)
	f.press(tcell.KeyBackspace2)
	f.press(tcell.KeyBackspace2)
	f.typeRune('X')
	f.press(tcell.KeyEnter)
	f.ui.Draw()

	assert.Equal(t, "LR", f.graphValue(attrschema.KindGraph, "rankdir"))
	assert.True(t, strings.HasPrefix(f.line(15), `invalid value "X"`), f.line(15))
}

func TestHandleKey_HideAndQuit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.False(t, f.typeRune('h'))
	assert.False(t, f.win.Visible())
	f.ui.Draw()
	assert.Equal(t, "Inspector hidden. Press h to show, q to quit.", f.line(0))

	f.typeRune('h')
	assert.True(t, f.win.Visible())

	assert.True(t, f.typeRune('q'))
	assert.True(t, f.press(tcell.KeyEscape))
	assert.True(t, f.press(tcell.KeyCtrlC))
}

func TestHandleKey_HiddenIgnoresEditingKeys(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	f.typeRune('h')
	require.False(t, f.win.Visible())

	// --- Act ---
	for _, key := range []tcell.Key{tcell.KeyTab, tcell.KeyDown, tcell.KeyRight, tcell.KeyLeft, tcell.KeyDelete, tcell.KeyEnter} {
		assert.False(t, f.press(key))
	}
	assert.False(t, f.typeRune('x'))

	// --- Assert ---
	assert.False(t, f.win.Visible())
	assert.Equal(t, attrschema.KindGraph, f.win.ActiveTab())
	assert.Equal(t, "rankdir", f.ui.Selected())
	assert.Equal(t, "LR", f.graphValue(attrschema.KindGraph, "rankdir"))
	assert.Equal(t, "red", f.graphValue(attrschema.KindEdge, "color"))
	assert.False(t, f.ui.editing)

	assert.True(t, f.press(tcell.KeyEscape), "Esc still quits while hidden")
	f.typeRune('h')
	assert.True(t, f.win.Visible())
}

func TestRun_QuitKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	done := make(chan error, 1)
	go func() { done <- f.ui.Run(context.Background()) }()

	require.NoError(t, f.screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRun_RedrawsOnDocumentChange(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	ctx, cancel := context.WithCancel(f.ctx)
	done := make(chan error, 1)
	go func() { done <- f.ui.Run(ctx) }()

	// --- Act ---
	next, err := document.ParseDOT("next.gv", []byte(`graph H { rankdir=BT; }`))
	require.NoError(t, err)
	f.ctrl.SetCurrent(next)

	// --- Assert ---
	require.Eventually(t, func() bool {
		return f.line(0) == " Attributes of next.gv" && f.line(3) == " rankdir  BT ▾"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
