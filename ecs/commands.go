package ecs

// Commands buffers structural changes requested by systems. The scheduler flushes
// them at the end of the tick (and once after the startup systems), so no system
// sees an entity appear or disappear halfway through its own iteration.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
	done       func(EntityId)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnThen queues an entity spawn and calls done with its id once it exists.
func (c *Commands) SpawnThen(done func(EntityId), components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components, done: done})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after the structural changes of this flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports how many operations are queued.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred functions, and resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.spawns {
		id := storage.Spawn(cmd.components...)
		if cmd.done != nil {
			cmd.done(id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
