package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	frameBackground = color.RGBA{R: 18, G: 18, B: 18, A: 255}
	captionText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	captionShadow   = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	captionBand     = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

const (
	captionMargin  = 8
	captionPad     = 6
	captionLeading = 3
)

var captionFace font.Face = basicfont.Face7x13

// blank returns a dark w×h frame used when there is nothing (or nothing valid) to plot.
func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(frameBackground), image.Point{}, draw.Src)
	return img
}

// wrapCaption splits text into lines no wider than maxW pixels. A single word
// wider than maxW gets a line of its own.
func wrapCaption(face font.Face, text string, maxW int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if font.MeasureString(face, cur+" "+w).Ceil() <= maxW {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// drawHint captions the bottom-left of img on a dark band, wrapping the text
// to the frame width. The last line sits on the bottom margin.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	m := captionFace.Metrics()
	ascent := m.Ascent.Ceil()
	lineH := m.Height.Ceil() + captionLeading
	x := b.Min.X + captionMargin
	lines := wrapCaption(captionFace, text, b.Dx()-2*(captionMargin+captionPad))

	widest := 0
	for _, l := range lines {
		if w := font.MeasureString(captionFace, l).Ceil(); w > widest {
			widest = w
		}
	}
	baseline := b.Max.Y - captionPad
	top := baseline - (len(lines)-1)*lineH - ascent
	band := image.Rect(x-captionPad, top-captionPad, x+widest+captionPad, baseline+captionPad/2).Intersect(b)
	draw.Draw(rgba, band, image.NewUniform(captionBand), image.Point{}, draw.Over)

	fg := &font.Drawer{Dst: rgba, Src: image.NewUniform(captionText), Face: captionFace}
	shadow := &font.Drawer{Dst: rgba, Src: image.NewUniform(captionShadow), Face: captionFace}
	for i, l := range lines {
		y := top + ascent + i*lineH
		shadow.Dot = fixed.P(x+1, y+1)
		shadow.DrawString(l)
		fg.Dot = fixed.P(x, y)
		fg.DrawString(l)
	}
	return rgba
}
