package ecs

// System is one stage of a tick. Query and Singleton fields on a system struct are
// bound to the scheduler's storage when the system is registered; any other fields
// persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// Condition gates a registered system. The system is skipped for the tick when the
// condition returns false.
type Condition func(storage *Storage) bool

// AnyWith reports whether at least one entity carries a component of type T.
func AnyWith[T any]() Condition {
	return func(storage *Storage) bool {
		return storage.countWith(typeFor[T]()) > 0
	}
}
