// Package ebiten holds the Ebiten Dear ImGui backend as an ECS singleton.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend wraps the Ebiten backend; the game loop calls BeginFrame
// and EndFrame around the update scheduler and Draw after rendering.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
