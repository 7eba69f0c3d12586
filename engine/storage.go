package engine

import (
	"iter"
	"slices"

	"github.com/informatter/text-tetris-engine/grid"
	"github.com/informatter/text-tetris-engine/polyomino"
	"github.com/kamstrup/intmap"
)

// StorageStats summarizes the live shapes.
type StorageStats struct {
	ShapeCount int
	SplitCount int
	CellCount  int
}

// Storage holds the live shapes, indexed by owner id and kept in drop order.
type Storage struct {
	shapes *intmap.Map[grid.Owner, *polyomino.Shape]
	order  []grid.Owner
}

// NewStorage creates an empty shape storage.
func NewStorage() *Storage {
	return &Storage{
		shapes: intmap.New[grid.Owner, *polyomino.Shape](64),
	}
}

// Spawn appends a shape to the storage.
func (s *Storage) Spawn(shape *polyomino.Shape) grid.Owner {
	id := shape.ID()
	if _, ok := s.shapes.Get(id); ok {
		panic("engine: shape " + shape.String() + " spawned twice")
	}

	s.shapes.Put(id, shape)
	s.order = append(s.order, id)
	return id
}

// Get returns the shape stored under id, or nil.
func (s *Storage) Get(id grid.Owner) *polyomino.Shape {
	shape, _ := s.shapes.Get(id)
	return shape
}

// Delete drops the given shapes. The drop order of the remaining shapes is
// rebuilt as a filtered copy.
func (s *Storage) Delete(ids ...grid.Owner) {
	if len(ids) == 0 {
		return
	}

	for _, id := range ids {
		s.shapes.Del(id)
	}

	order := make([]grid.Owner, 0, len(s.order))
	for _, id := range s.order {
		if _, ok := s.shapes.Get(id); ok {
			order = append(order, id)
		}
	}
	s.order = order
}

// Len returns the number of live shapes.
func (s *Storage) Len() int {
	return len(s.order)
}

// Iter yields the live shapes in drop order. Deleting while iterating is
// safe; the iteration sees the order as it was when it started.
func (s *Storage) Iter() iter.Seq[*polyomino.Shape] {
	order := s.order
	return func(yield func(*polyomino.Shape) bool) {
		for _, id := range order {
			shape, ok := s.shapes.Get(id)
			if !ok {
				continue
			}
			if !yield(shape) {
				return
			}
		}
	}
}

// Shapes returns the live shapes in drop order.
func (s *Storage) Shapes() []*polyomino.Shape {
	return slices.Collect(s.Iter())
}

// Clear drops every shape.
func (s *Storage) Clear() {
	s.shapes.Clear()
	s.order = nil
}

// CollectStats counts live shapes, split shapes and the cells they own.
func (s *Storage) CollectStats() StorageStats {
	var stats StorageStats
	for shape := range s.Iter() {
		stats.ShapeCount++
		stats.CellCount += len(shape.Body())
		if _, split := shape.LastClearedRow(); split {
			stats.SplitCount++
		}
	}
	return stats
}
