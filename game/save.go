package game

import (
	"context"
	"fmt"

	"github.com/plus3/handblast/scorestore"
)

// GameSaver keeps one unfinished game across program runs.
type GameSaver interface {
	SaveGame(ctx context.Context, g scorestore.SavedGame) error
	LoadGame(ctx context.Context) (scorestore.SavedGame, bool, error)
	ClearGame(ctx context.Context) error
}

// Suspend saves the game in progress so a later run can resume it. A
// session that never started or has already ended clears any earlier
// save instead.
func (w *World) Suspend(ctx context.Context, saver GameSaver) error {
	match := w.Match()
	engine := match.Engine
	if !engine.Started() || match.Recorded || !engine.HasMoves() {
		return saver.ClearGame(ctx)
	}

	err := saver.SaveGame(ctx, scorestore.SavedGame{
		RunID:     match.RunID,
		StartedAt: match.StartedAt,
		Game:      engine.Snapshot(),
	})
	if err != nil {
		return fmt.Errorf("suspend run %s: %w", match.RunID, err)
	}
	return nil
}

// ResumeSaved restores the saved game, if any, under its original run id
// and leaves the engine in the menu so the player chooses to resume it.
func (w *World) ResumeSaved(ctx context.Context, saver GameSaver) (bool, error) {
	saved, ok, err := saver.LoadGame(ctx)
	if err != nil || !ok {
		return false, err
	}

	match := w.Match()
	match.Engine.Restore(saved.Game)
	match.Engine.Acknowledge()
	match.RunID = saved.RunID
	match.StartedAt = saved.StartedAt
	match.Recorded = false
	return true, nil
}
