package sheet

import (
	"image"

	"github.com/fogleman/gg"
)

// generateBack draws a neutral card back sized to one cell: a dark rounded
// card face with a double border and a centered oval, in the style of a
// generic deck back.
func generateBack(width, height int) image.Image {
	w := float64(width)
	h := float64(height)
	dc := gg.NewContext(width, height)

	// Card face.
	dc.SetRGB255(28, 26, 34)
	dc.DrawRoundedRectangle(0, 0, w, h, w*0.05)
	dc.Fill()

	// Outer border.
	dc.SetRGB255(168, 140, 74)
	dc.SetLineWidth(w * 0.015)
	dc.DrawRoundedRectangle(w*0.04, h*0.04, w*0.92, h*0.92, w*0.04)
	dc.Stroke()

	// Inner border.
	dc.SetLineWidth(w * 0.008)
	dc.DrawRoundedRectangle(w*0.08, h*0.08, w*0.84, h*0.84, w*0.03)
	dc.Stroke()

	// Centered oval.
	dc.SetRGB255(58, 50, 72)
	dc.DrawEllipse(w/2, h/2, w*0.3, h*0.25)
	dc.Fill()
	dc.SetRGB255(168, 140, 74)
	dc.SetLineWidth(w * 0.01)
	dc.DrawEllipse(w/2, h/2, w*0.3, h*0.25)
	dc.Stroke()

	return dc.Image()
}
