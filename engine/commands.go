package engine

import "github.com/informatter/text-tetris-engine/grid"

// Commands buffers structural changes to the storage requested by systems
// during a frame. They are applied by Flush once every system has run.
type Commands struct {
	deletes []grid.Owner
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

// Delete queues the removal of a shape from the storage.
func (c *Commands) Delete(id grid.Owner) {
	c.deletes = append(c.deletes, id)
}

// Defer queues a function to run after the queued deletions.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Pending returns the number of queued commands.
func (c *Commands) Pending() int {
	return len(c.deletes) + len(c.defers)
}

// Flush applies all queued commands to storage and resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	storage.Delete(c.deletes...)

	for _, df := range c.defers {
		df.fn()
	}

	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
