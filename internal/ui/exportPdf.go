package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"LocalSketch/internal/config"
	"LocalSketch/internal/export"
)

// exportAction asks for a destination and writes the drawing as a PDF.
func exportAction(win fyne.Window, b *BoardWidget, opts config.ExportConfig) func() {
	return func() {
		save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if w == nil {
				return
			}
			entities := b.board.drawing.Entities()
			if err := export.PDF(w, entities, opts); err != nil {
				w.Close()
				b.report("export", err)
				return
			}
			if err := w.Close(); err != nil {
				b.report("export", err)
				return
			}
			b.board.log.WithField("uri", w.URI().String()).Info("drawing exported")
			b.status.SetText(fmt.Sprintf("Exported %d entities to %s", len(entities), w.URI().Name()))
		}, win)
		save.SetFileName("sketch.pdf")
		save.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
		save.Show()
	}
}
