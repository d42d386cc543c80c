package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/ctxlog"
	"github.com/vk/attrinspect/internal/inspector"
)

const (
	headerRows      = 3
	descriptionRows = 3
	maxNameWidth    = 28
	choiceMarker    = " ▾"
	helpText        = "Tab tabs  ↑↓ select  ←→ cycle  Enter edit  Del reset  h hide  q quit"
)

// UI draws an inspector window on a tcell screen and feeds it key input.
type UI struct {
	logger *slog.Logger
	screen tcell.Screen
	win    *inspector.Window

	selected map[attrschema.Kind]int
	offset   map[attrschema.Kind]int

	editing bool
	edit    []rune

	status    string
	statusErr bool
}

// New creates the front-end. The screen must already be initialized.
func New(ctx context.Context, screen tcell.Screen, win *inspector.Window) *UI {
	return &UI{
		logger:   ctxlog.FromContext(ctx).With("component", "tui"),
		screen:   screen,
		win:      win,
		selected: make(map[attrschema.Kind]int),
		offset:   make(map[attrschema.Kind]int),
	}
}

// Run processes events until the user quits, ctx is cancelled or the
// screen is finalized. Window changes coming from other goroutines are
// marshalled onto the event loop.
func (u *UI) Run(ctx context.Context) error {
	u.win.OnChange(func() {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer u.win.OnChange(nil)

	stop := context.AfterFunc(ctx, func() {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(ctx))
	})
	defer stop()

	u.logger.Debug("Terminal UI started.")
	u.Draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if u.HandleKey(ev) {
				u.logger.Debug("Terminal UI closed by user.")
				return nil
			}
		}
		u.Draw()
	}
}

// HandleKey applies a key press and reports whether the UI should quit.
func (u *UI) HandleKey(ev *tcell.EventKey) bool {
	if !u.win.Visible() {
		return u.handleHiddenKey(ev)
	}
	if u.editing {
		u.handleEditKey(ev)
		return false
	}
	u.setStatus("", false)

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyTab:
		u.win.CycleTab(1)
	case tcell.KeyBacktab:
		u.win.CycleTab(-1)
	case tcell.KeyUp:
		u.moveSelection(-1)
	case tcell.KeyDown:
		u.moveSelection(1)
	case tcell.KeyLeft:
		u.cycle(-1)
	case tcell.KeyRight:
		u.cycle(1)
	case tcell.KeyEnter:
		u.startEdit()
	case tcell.KeyDelete:
		u.reset()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			u.win.Toggle()
		}
	}
	return false
}

// handleHiddenKey accepts only the keys that quit or show the window again.
func (u *UI) handleHiddenKey(ev *tcell.EventKey) bool {
	u.editing = false
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			u.setStatus("", false)
			u.win.Toggle()
		}
	}
	return false
}

func (u *UI) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		u.editing = false
		u.setStatus("Edit cancelled.", false)
	case tcell.KeyEnter:
		u.editing = false
		row, ok := u.current()
		if !ok {
			return
		}
		if err := u.win.SetValue(u.win.ActiveTab(), row.Descriptor.Name, string(u.edit)); err != nil {
			u.setStatus(err.Error(), true)
			return
		}
		u.setStatus(fmt.Sprintf("%s = %s", row.Descriptor.Name, string(u.edit)), false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.edit) > 0 {
			u.edit = u.edit[:len(u.edit)-1]
		}
	case tcell.KeyRune:
		u.edit = append(u.edit, ev.Rune())
	}
}

func (u *UI) current() (inspector.Row, bool) {
	rows := u.win.Rows(u.win.ActiveTab())
	idx := u.selected[u.win.ActiveTab()]
	if idx < 0 || idx >= len(rows) {
		return inspector.Row{}, false
	}
	return rows[idx], true
}

// Selected returns the name of the selected row, or "".
func (u *UI) Selected() string {
	row, ok := u.current()
	if !ok {
		return ""
	}
	return row.Descriptor.Name
}

func (u *UI) moveSelection(step int) {
	kind := u.win.ActiveTab()
	n := len(u.win.Rows(kind))
	if n == 0 {
		return
	}
	u.selected[kind] = min(max(u.selected[kind]+step, 0), n-1)
}

func (u *UI) cycle(step int) {
	row, ok := u.current()
	if !ok {
		return
	}
	if !row.Descriptor.ClosedChoice() {
		u.setStatus(row.Descriptor.Name+" is free-form, press Enter to edit.", false)
		return
	}
	value, err := u.win.CycleValue(u.win.ActiveTab(), row.Descriptor.Name, step)
	if err != nil {
		u.setStatus(err.Error(), true)
		return
	}
	u.setStatus(fmt.Sprintf("%s = %s", row.Descriptor.Name, value), false)
}

func (u *UI) startEdit() {
	row, ok := u.current()
	if !ok {
		return
	}
	u.editing = true
	u.edit = []rune(row.Value)
}

func (u *UI) reset() {
	row, ok := u.current()
	if !ok {
		return
	}
	if err := u.win.ResetValue(u.win.ActiveTab(), row.Descriptor.Name); err != nil {
		u.setStatus(err.Error(), true)
		return
	}
	u.setStatus(row.Descriptor.Name+" reset to default.", false)
}

func (u *UI) setStatus(msg string, isErr bool) {
	u.status = msg
	u.statusErr = isErr
	if isErr {
		u.logger.Debug("Edit rejected.", "reason", msg)
	}
}

// Draw renders the whole window.
func (u *UI) Draw() {
	s := u.screen
	s.Clear()
	width, height := s.Size()

	if !u.win.Visible() {
		drawText(s, 0, 0, width, "Inspector hidden. Press h to show, q to quit.", styleHelp)
		s.Show()
		return
	}

	fillLine(s, 0, 0, width, styleTitle)
	drawText(s, 1, 0, width-1, u.win.Title(), styleTitle)
	u.drawTabs(width)
	u.drawGrid(width, height)
	u.drawFooter(width, height)
	s.Show()
}

func (u *UI) drawTabs(width int) {
	x := 1
	active := u.win.ActiveTab()
	for i, tab := range u.win.Tabs() {
		if i > 0 {
			x += drawText(u.screen, x, 1, width-x, " │ ", styleTab)
		}
		style := styleTab
		if tab.Kind == active {
			style = styleTabOn
		}
		x += drawText(u.screen, x, 1, width-x, tab.Title, style)
	}
}

func (u *UI) drawGrid(width, height int) {
	kind := u.win.ActiveTab()
	rows := u.win.Rows(kind)
	visible := height - headerRows - descriptionRows - 1
	if visible <= 0 {
		return
	}

	selected := u.selected[kind]
	offset := u.offset[kind]
	if selected < offset {
		offset = selected
	}
	if selected >= offset+visible {
		offset = selected - visible + 1
	}
	u.offset[kind] = offset

	nameWidth := 0
	for _, row := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(row.Descriptor.Name))
	}
	nameWidth = min(nameWidth, maxNameWidth)

	for i := 0; i < visible && offset+i < len(rows); i++ {
		idx := offset + i
		row := rows[idx]
		y := headerRows + i

		nameStyle, valueStyle := styleDefault, styleDefault
		if row.Explicit {
			valueStyle = styleExplicit
		}
		if idx == selected {
			fillLine(u.screen, 0, y, width, styleSelected)
			nameStyle, valueStyle = styleSelected, styleSelected.Bold(row.Explicit)
		}

		drawText(u.screen, 1, y, nameWidth, row.Descriptor.Name, nameStyle)
		x := nameWidth + 3
		value := row.Value
		if idx == selected && u.editing {
			value = string(u.edit) + "_"
		} else if row.Descriptor.ClosedChoice() {
			value += choiceMarker
		}
		drawText(u.screen, x, y, width-x, value, valueStyle)
	}
}

func (u *UI) drawFooter(width, height int) {
	top := height - descriptionRows - 1
	if top < headerRows {
		return
	}

	if row, ok := u.current(); ok {
		for i, line := range wrap(row.Descriptor.DescriptionText(), width-2) {
			if i == descriptionRows {
				break
			}
			drawText(u.screen, 1, top+i, width-2, line, styleHelp)
		}
	}

	switch {
	case u.editing:
		drawText(u.screen, 0, height-1, width, "Edit: Enter to apply, Esc to cancel", styleStatus)
	case u.status != "" && u.statusErr:
		drawText(u.screen, 0, height-1, width, u.status, styleError)
	case u.status != "":
		drawText(u.screen, 0, height-1, width, u.status, styleStatus)
	default:
		drawText(u.screen, 0, height-1, width, helpText, styleHelp)
	}
}
