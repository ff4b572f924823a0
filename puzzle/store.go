package puzzle

// ScoreStore persists the best score between runs. The engine reads it
// once at construction and writes through every time the best improves.
type ScoreStore interface {
	LoadBest() (int, error)
	SaveBest(best int) error
}

// MemoryStore is an in-process ScoreStore.
type MemoryStore struct {
	Best  int
	Saves int
	// Err, when set, is returned from both LoadBest and SaveBest.
	Err error
}

func (m *MemoryStore) LoadBest() (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Best, nil
}

func (m *MemoryStore) SaveBest(best int) error {
	if m.Err != nil {
		return m.Err
	}
	m.Best = best
	m.Saves++
	return nil
}
