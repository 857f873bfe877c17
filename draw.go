package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/encounter"
	"github.com/milk9111/purgatorium/prefabs"
	"golang.org/x/image/colornames"
)

type palette struct {
	Background color.Color
	Arena      color.Color
	Player     color.Color
	Adversary  color.Color
	Barrier    color.Color
	Rejected   color.Color
}

func paletteFromSpec(s prefabs.PaletteSpec) palette {
	return palette{
		Background: s.Background.Or(colornames.Black),
		Arena:      colornames.Dimgray,
		Player:     s.Player.Or(colornames.White),
		Adversary:  s.Adversary.Or(colornames.Crimson),
		Barrier:    s.Barrier.Or(colornames.Deepskyblue),
		Rejected:   colornames.Orangered,
	}
}

func drawRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func drawArena(screen *ebiten.Image, enc *encounter.Encounter, pal palette) {
	a := enc.Arena()
	vector.StrokeRect(screen, 0, 0, float32(a.Width), float32(a.Height), 2, pal.Arena, false)
}

func drawPlayer(screen *ebiten.Image, enc *encounter.Encounter, pal palette, rejected bool) {
	p := enc.Player()
	if p == nil {
		return
	}
	clr := pal.Player
	if rejected {
		clr = pal.Rejected
	}
	drawRect(screen, p.Rect, clr)
}

func drawAdversary(screen *ebiten.Image, enc *encounter.Encounter, pal palette) {
	a := enc.Adversary()
	if a == nil {
		return
	}
	drawRect(screen, a.Rect, pal.Adversary)
}

// drawBarrier shows the current extension as a filled disc and the full
// reach as an outline while the barrier is out.
func drawBarrier(screen *ebiten.Image, enc *encounter.Encounter, pal palette) {
	b := enc.Barrier()
	p := enc.Player()
	if b == nil || p == nil || b.Extension() <= 0 {
		return
	}

	c := b.Origin(p.Rect)
	r := b.Radius(p.Rect)
	fill := withAlpha(pal.Barrier, 0.25)
	if b.Armed() {
		fill = withAlpha(pal.Barrier, 0.45)
	}
	vector.FillCircle(screen, float32(c.X), float32(c.Y), float32(r*b.Extension()), fill, true)
	vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(r), 1.5, pal.Barrier, true)
}

func drawProjectiles(screen *ebiten.Image, enc *encounter.Encounter) {
	for _, p := range enc.Projectiles() {
		if p == nil || !p.Active {
			continue
		}
		c := p.Center()
		vector.FillCircle(screen, float32(c.X), float32(c.Y), float32(p.Width/2), projectileColor(p.Hue, p.Saturation, p.Value, p.Alpha), true)
	}
}

// projectileColor converts the tint in [0,1] HSV plus alpha to a drawable color.
func projectileColor(h, s, v, a float64) color.Color {
	c := colorful.Hsv(h*360, s, v).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(common.Clamp(a, 0, 1) * 255)}
}

func withAlpha(clr color.Color, a float64) color.Color {
	c, ok := colorful.MakeColor(clr)
	if !ok {
		return clr
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(common.Clamp(a, 0, 1) * 255)}
}
