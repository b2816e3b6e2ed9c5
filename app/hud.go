package app

import (
	"image/color"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	hudFont tinyfont.Fonter = &proggy.TinySZ8pt7b
	hudFG                   = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	hudBG                   = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

const hudPad = 3

// drawLines paints lines top-left on a dark backing box. Lines wider than
// the display are cut.
func drawLines(d fbDisplay, lines []string, fg, bg color.RGBA) {
	w, h := d.Size()
	if w <= 0 || h <= 0 || len(lines) == 0 {
		return
	}
	lineH := int16(hudFont.GetYAdvance())
	if lineH <= 0 {
		return
	}

	var boxW uint32
	for _, s := range lines {
		if _, ow := tinyfont.LineWidth(hudFont, s); ow > boxW {
			boxW = ow
		}
	}
	boxH := int16(len(lines))*lineH + 2*hudPad
	d.FillRectangle(0, 0, int16(boxW)+2*hudPad, boxH, bg)

	y := hudPad + lineH
	for _, s := range lines {
		if y > h {
			break
		}
		tinyfont.WriteLine(d, hudFont, hudPad, y, fitRunes(s, w), fg)
		y += lineH
	}
}

// fitRunes trims s until it fits into width pixels.
func fitRunes(s string, width int16) string {
	for s != "" {
		if _, ow := tinyfont.LineWidth(hudFont, s); int64(ow) <= int64(width)-2*hudPad {
			return s
		}
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}
