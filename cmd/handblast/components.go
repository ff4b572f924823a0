package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/handblast/game"
	"github.com/plus3/handblast/internal/ecs"
	debugui_ebiten "github.com/plus3/handblast/internal/ecs/debugui/ebiten"
	"github.com/plus3/handblast/puzzle"
)

var (
	background = color.RGBA{30, 30, 30, 255}
	gridLine   = color.RGBA{50, 50, 50, 255}
	emptyCell  = color.RGBA{40, 40, 40, 255}
	textColor  = color.RGBA{255, 255, 255, 255}
	buttonIdle = color.RGBA{70, 70, 70, 255}
	buttonOff  = color.RGBA{45, 45, 45, 255}
	buttonHot  = color.RGBA{100, 100, 100, 255}
	validDrop  = color.RGBA{46, 204, 113, 255}
	badDrop    = color.RGBA{231, 76, 60, 255}
	cursorIdle = color.RGBA{255, 255, 255, 200}
	cursorHeld = color.RGBA{255, 215, 0, 255}
	overlay    = color.RGBA{0, 0, 0, 180}
	clearFlash = color.RGBA{255, 255, 255, 90}
)

// pieceColors maps puzzle.Color to a fill, index 0 unused.
var pieceColors = [puzzle.MaxColor + 1]color.RGBA{
	{200, 200, 200, 255},
	{231, 76, 60, 255},
	{241, 196, 15, 255},
	{46, 204, 113, 255},
	{52, 152, 219, 255},
	{155, 89, 182, 255},
}

func fill(c puzzle.Color) color.RGBA {
	if !c.Valid() {
		return pieceColors[0]
	}
	return pieceColors[c]
}

type Screen struct {
	*ebiten.Image
}

// Game implements ebiten.Game. Update ticks the world scheduler, Draw runs
// the render scheduler against the same storage.
type Game struct {
	World           *game.World
	RenderScheduler *ecs.Scheduler
	Screen          *ecs.Singleton[Screen]
	ImguiBackend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
}
