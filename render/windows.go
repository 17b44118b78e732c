package render

import (
	"log"

	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/posterior"
)

// Windows is a posterior.Observer that shows the foreground and background
// planes of every computed Field in two GUI windows
type Windows struct {
	// Colormap applied to both planes
	Colormap gocv.ColormapTypes
	// Delay in milliseconds to wait for a key press after each update, 0
	// blocks until a key is pressed
	Delay int

	fg *gocv.Window
	bg *gocv.Window
}

// NewWindows opens the "Pf" and "Pb" windows
func NewWindows(colormap gocv.ColormapTypes, delay int) *Windows {
	return &Windows{
		Colormap: colormap,
		Delay:    delay,
		fg:       gocv.NewWindow("Pf"),
		bg:       gocv.NewWindow("Pb"),
	}
}

// ObservePosterior displays the planes of f
func (w *Windows) ObservePosterior(f *posterior.Field) {

	w.show(w.fg, f.Foreground)
	w.show(w.bg, f.Background)

	w.fg.WaitKey(w.Delay)
}

func (w *Windows) show(win *gocv.Window, p *frame.Plane) {

	view := gocv.NewMat()
	defer view.Close()

	if err := PlaneView(p, &view, w.Colormap); err != nil {
		log.Printf("Error rendering plane: %v", err)
		return
	}

	win.IMShow(view)
}

// Close closes both windows
func (w *Windows) Close() {
	w.fg.Close()
	w.bg.Close()
}
