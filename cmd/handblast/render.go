package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/handblast/game"
	"github.com/plus3/handblast/internal/ecs"
	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
)

type RenderSystem struct {
	Screen   ecs.Singleton[Screen]
	Match    ecs.Singleton[game.Match]
	Layout   ecs.Singleton[layout.Layout]
	Input    ecs.Singleton[game.Input]
	Feedback ecs.Singleton[game.Feedback]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	match := s.Match.Get()
	l := s.Layout.Get()
	input := s.Input.Get()
	if screen == nil || screen.Image == nil || match == nil || l == nil || input == nil {
		return
	}
	dst := screen.Image
	engine := match.Engine

	dst.Fill(background)

	switch engine.State() {
	case puzzle.StateMenu:
		s.renderMenu(dst, l, engine, input)
	case puzzle.StatePlaying:
		s.renderPlay(dst, l, engine, input)
	case puzzle.StateGameOver:
		s.renderPlay(dst, l, engine, input)
		renderGameOver(dst, l, engine)
	}

	renderCursor(dst, input)
}

func (s *RenderSystem) renderMenu(dst *ebiten.Image, l *layout.Layout, engine *puzzle.Engine, input *game.Input) {
	ebitenutil.DebugPrintAt(dst, "HAND BLAST", l.Width/2-30, 180)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Best: %d", engine.Best()), l.Width/2-30, 220)

	hovered, hovering := l.ButtonAt(input.Pointer.X, input.Pointer.Y)
	for _, b := range layout.Buttons {
		r := l.ButtonRect(b)
		c := buttonIdle
		switch {
		case b == layout.ButtonResume && !engine.Started():
			c = buttonOff
		case hovering && hovered == b:
			c = buttonHot
		}
		fillRect(dst, r, c)
		strokeRect(dst, r, 2, textColor)
		label := b.String()
		ebitenutil.DebugPrintAt(dst, label, r.MinX+r.Dx()/2-len(label)*3, r.MinY+r.Dy()/2-8)
	}
}

func (s *RenderSystem) renderPlay(dst *ebiten.Image, l *layout.Layout, engine *puzzle.Engine, input *game.Input) {
	board := engine.Board()
	for y := range puzzle.Size {
		for x := range puzzle.Size {
			r := l.CellRect(x, y)
			c := emptyCell
			if pc, ok := board.At(x, y).Color(); ok {
				c = fill(pc)
			}
			fillRect(dst, r, c)
			strokeRect(dst, r, 1, gridLine)
		}
	}

	if fb := s.Feedback.Get(); fb != nil && fb.Valid {
		flash := fade(clearFlash, 1-fb.Age/game.FeedbackDuration)
		for _, y := range fb.Move.Clear.Rows {
			first, last := l.CellRect(0, y), l.CellRect(puzzle.Size-1, y)
			fillRect(dst, layout.Rect{MinX: first.MinX, MinY: first.MinY, MaxX: last.MaxX, MaxY: last.MaxY}, flash)
		}
		for _, x := range fb.Move.Clear.Cols {
			first, last := l.CellRect(x, 0), l.CellRect(x, puzzle.Size-1)
			fillRect(dst, layout.Rect{MinX: first.MinX, MinY: first.MinY, MaxX: last.MaxX, MaxY: last.MaxY}, flash)
		}
	}

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d", engine.Score()), l.UIX, l.GridY)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Best: %d", engine.Best()), l.UIX, l.GridY+40)

	held, holding := engine.Holding()
	tray := engine.Tray()
	for i := range puzzle.TraySize {
		p, ok := tray.Slot(i)
		if !ok || (holding && held == i) {
			continue
		}
		ox, oy := l.TrayOrigin(i)
		renderPiece(dst, p, ox, oy, l.TrayCellSize, fill(p.Color))
	}

	if p, ok := engine.HeldPiece(); ok {
		x, y := l.GridCell(input.Pointer.X, input.Pointer.Y)
		outline := badDrop
		if engine.CanPlace(p, x, y) {
			outline = validDrop
		}
		ghost := fade(fill(p.Color), 0.6)
		for _, o := range p.Offsets() {
			r := l.CellRect(x+o.DX, y+o.DY)
			fillRect(dst, r, ghost)
			strokeRect(dst, r, 3, outline)
		}
	}
}

func renderGameOver(dst *ebiten.Image, l *layout.Layout, engine *puzzle.Engine) {
	fillRect(dst, layout.Rect{MaxX: l.Width, MaxY: l.Height}, overlay)
	ebitenutil.DebugPrintAt(dst, "GAME OVER", l.Width/2-27, l.Height/2-40)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d", engine.Score()), l.Width/2-27, l.Height/2)
	ebitenutil.DebugPrintAt(dst, "Press ESC for the menu", l.Width/2-66, l.Height/2+40)
}

func renderPiece(dst *ebiten.Image, p puzzle.Piece, ox, oy, size int, c color.RGBA) {
	for _, o := range p.Offsets() {
		x := float32(ox + o.DX*size)
		y := float32(oy + o.DY*size)
		vector.DrawFilledRect(dst, x, y, float32(size), float32(size), c, false)
		vector.StrokeRect(dst, x, y, float32(size), float32(size), 1, background, false)
	}
}

func renderCursor(dst *ebiten.Image, input *game.Input) {
	if !input.Pointer.Detected {
		return
	}
	c := cursorIdle
	if input.Pointer.Selecting {
		c = cursorHeld
	}
	vector.DrawFilledCircle(dst, float32(input.Pointer.X), float32(input.Pointer.Y), 8, c, true)
}

func fillRect(dst *ebiten.Image, r layout.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.MinX), float32(r.MinY), float32(r.Dx()), float32(r.Dy()), c, false)
}

func strokeRect(dst *ebiten.Image, r layout.Rect, width float32, c color.Color) {
	vector.StrokeRect(dst, float32(r.MinX), float32(r.MinY), float32(r.Dx()), float32(r.Dy()), width, c, false)
}

// fade scales the alpha of a non-premultiplied colour.
func fade(c color.RGBA, k float64) color.NRGBA {
	k = min(max(k, 0), 1)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * k)}
}
