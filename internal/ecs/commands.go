package ecs

// Commands buffers structural changes and deferred calls made while
// systems run. They are applied in order spawns, deletes, defers once every
// system of the tick has executed.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer queues fn to run after the structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies the buffered commands to storage and resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
