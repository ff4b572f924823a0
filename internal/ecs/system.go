package ecs

// System is a behaviour run once per tick. Value fields of type Query or
// Singleton are wired by Scheduler.Register; other fields keep whatever
// state the system needs between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during one Scheduler.Once.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  &Commands{},
		Storage:   storage,
	}
}
