package ui

import "github.com/gdamore/tcell/v2"

// Renk paleti
var (
	ColorBg        = tcell.NewRGBColor(16, 24, 32)
	ColorFg        = tcell.NewRGBColor(200, 205, 210)
	ColorBorder    = tcell.NewRGBColor(90, 170, 120)
	ColorTitle     = tcell.NewRGBColor(255, 255, 255)
	ColorHighlight = tcell.NewRGBColor(120, 220, 160)
	ColorMuted     = tcell.NewRGBColor(120, 128, 136)
	ColorOwn       = tcell.NewRGBColor(255, 214, 102)
	ColorError     = tcell.ColorRed
	ColorField     = tcell.NewRGBColor(32, 44, 56)
)
