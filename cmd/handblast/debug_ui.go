package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/handblast/game"
	"github.com/plus3/handblast/internal/ecs/debugui"
	"github.com/plus3/handblast/puzzle"
)

func spawnEngineWindow(w *game.World) {
	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			engine := w.Engine()
			input := w.Input()

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(280, 260), imgui.CondOnce)

			if imgui.BeginV("Engine", nil, 0) {
				imgui.Text(fmt.Sprintf("State: %s", engine.State()))
				imgui.Text(fmt.Sprintf("Score: %d  Best: %d", engine.Score(), engine.Best()))
				stats := engine.Stats()
				imgui.Text(fmt.Sprintf("Placements: %d", stats.Placements))
				imgui.Text(fmt.Sprintf("Lines: %d  Best combo: %d", stats.Lines, stats.BestCombo))
				imgui.Separator()

				tray := engine.Tray()
				for i := range puzzle.TraySize {
					if p, ok := tray.Slot(i); ok {
						imgui.Text(fmt.Sprintf("Slot %d: %s", i, p))
					} else {
						imgui.Text(fmt.Sprintf("Slot %d: -", i))
					}
				}
				if slot, ok := engine.Holding(); ok {
					imgui.Text(fmt.Sprintf("Holding slot %d", slot))
				}
				imgui.Separator()

				imgui.Text(fmt.Sprintf("Pointer: (%d, %d)", input.Pointer.X, input.Pointer.Y))
				imgui.Text(fmt.Sprintf("Pinch: %t", input.Pointer.Selecting))
				imgui.Text(fmt.Sprintf("Run: %s", w.Match().RunID))

				imgui.End()
			}
		},
	})
}

func spawnSchedulerWindow(w *game.World) {
	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			stats := w.Scheduler.GetStats()

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(280, 200), imgui.CondOnce)

			if imgui.BeginV("Systems", nil, 0) {
				imgui.Text(fmt.Sprintf("Executions: %d", stats.TotalExecutions))
				imgui.Separator()
				for _, sys := range stats.Systems {
					imgui.Text(fmt.Sprintf("%s: avg %s, max %s", sys.Name, sys.AvgDuration, sys.MaxDuration))
				}
				imgui.End()
			}
		},
	})
}
