package ecs

// UpdateFrame is handed to every system during a single scheduler tick.
type UpdateFrame struct {
	// DeltaTime is the host-supplied step in seconds. It is not clamped.
	DeltaTime float64
	// Tick counts completed update ticks before this one.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
