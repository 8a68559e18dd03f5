// Package ui is the fyne front end of LocalSketch.
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"

	"LocalSketch/internal/config"
)

// Options configures one board window.
type Options struct {
	Title   string
	Share   string
	Drawing Drawing
	Config  *config.Config
	Log     logrus.FieldLogger
	// Attach is called with the board before the window opens, so the
	// caller can route drawing changes to it.
	Attach func(*BoardWidget)
}

// RunApp opens the board and blocks until the window is closed.
func RunApp(opts Options) {
	myApp := app.NewWithID("dev.localsketch")
	myWindow := myApp.NewWindow(opts.Title)
	myWindow.Resize(fyne.NewSize(1024, 768))

	board := NewBoardWidget(opts.Drawing, opts.Config, opts.Log)
	if opts.Attach != nil {
		opts.Attach(board)
	}
	toolbar := NewToolbar(board, opts.Share, exportAction(myWindow, board, opts.Config.Export))

	c := myWindow.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { board.Undo() })
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			board.Cancel()
		}
	})

	content := container.NewBorder(toolbar, board.Status(), nil, nil, board)
	myWindow.SetContent(content)
	board.Redraw()
	myWindow.ShowAndRun()
}
