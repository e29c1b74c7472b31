package gui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/dailytasks/internal/app"
)

const (
	AppID       = "com.github.idilsaglam.dailytasks"
	WindowTitle = "ToDo App"
	Heading     = "Daily Tasks"
	Placeholder = "Add todo"
)

var (
	windowSize = fyne.NewSize(750, 300)
	columnSize = float32(500)
	listSize   = fyne.NewSize(500, 150)
)

// Window is the desktop view: heading, entry, list and the three buttons.
// Button handlers forward to the controller and mirror its result.
type Window struct {
	ctx  context.Context
	ctrl *app.Controller
	log  zerolog.Logger
	win  fyne.Window

	heading   *canvas.Text
	entry     *widget.Entry
	list      *widget.List
	addBtn    *widget.Button
	updateBtn *widget.Button
	deleteBtn *widget.Button
}

// New builds the window on a. ctrl should already be loaded.
// Writes keep ctx's values but not its cancellation; see QuitOnDone.
func New(ctx context.Context, a fyne.App, ctrl *app.Controller, log zerolog.Logger) *Window {
	w := &Window{
		ctx:  context.WithoutCancel(ctx),
		ctrl: ctrl,
		log:  log,
		win:  a.NewWindow(WindowTitle),
	}
	w.initializeComponents()
	w.buildLayout()

	w.win.Resize(windowSize)
	w.win.SetOnClosed(w.release)
	return w
}

func (w *Window) initializeComponents() {
	w.heading = canvas.NewText(Heading, theme.Color(theme.ColorNameForeground))
	w.heading.TextSize = 25
	w.heading.TextStyle = fyne.TextStyle{Bold: true}
	w.heading.Alignment = fyne.TextAlignCenter

	w.entry = widget.NewEntry()
	w.entry.SetPlaceHolder(Placeholder)

	w.list = widget.NewList(
		w.ctrl.Len,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if it, ok := w.ctrl.Item(id); ok {
				o.(*widget.Label).SetText(it.Name)
			}
		},
	)
	w.list.OnSelected = func(id widget.ListItemID) { w.ctrl.Select(id) }
	w.list.OnUnselected = func(widget.ListItemID) { w.ctrl.Unselect() }

	w.addBtn = widget.NewButton("Add", w.onAdd)
	w.updateBtn = widget.NewButton("Update", w.onUpdate)
	w.deleteBtn = widget.NewButton("Delete", w.onDelete)
	for _, b := range []*widget.Button{w.addBtn, w.updateBtn, w.deleteBtn} {
		b.Importance = widget.HighImportance
	}
}

func (w *Window) buildLayout() {
	fixed := func(o fyne.CanvasObject) fyne.CanvasObject {
		return container.NewGridWrap(fyne.NewSize(columnSize, o.MinSize().Height), o)
	}
	column := container.NewVBox(
		w.heading,
		fixed(w.entry),
		container.NewGridWrap(listSize, w.list),
		fixed(w.addBtn),
		fixed(w.updateBtn),
		fixed(w.deleteBtn),
	)
	w.win.SetContent(container.NewPadded(container.NewCenter(column)))
}

// QuitOnDone calls quit once ctx is done. The returned func stops watching.
func QuitOnDone(ctx context.Context, quit func()) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			quit()
		case <-done:
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Show puts the window on screen.
func (w *Window) Show() { w.win.Show() }

func (w *Window) onAdd() {
	applied, err := w.ctrl.Add(w.ctx, w.entry.Text)
	if err != nil {
		w.showError(err)
		return
	}
	if applied {
		w.entry.SetText("")
		w.list.Refresh()
	}
}

func (w *Window) onUpdate() {
	applied, err := w.ctrl.Update(w.ctx, w.entry.Text)
	if err != nil {
		w.showError(err)
		return
	}
	if applied {
		w.entry.SetText("")
		w.list.Refresh()
	}
}

func (w *Window) onDelete() {
	applied, err := w.ctrl.Delete(w.ctx)
	if err != nil {
		w.showError(err)
		return
	}
	if applied {
		w.list.UnselectAll()
		w.list.Refresh()
	}
}

func (w *Window) showError(err error) {
	dialog.ShowError(err, w.win)
}

// release runs on the close path and gives the database back.
func (w *Window) release() {
	if err := w.ctrl.Close(); err != nil {
		w.log.Error().Err(err).Msg("close store")
		return
	}
	w.log.Debug().Msg("window closed")
}
