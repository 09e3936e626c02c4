package ecs

import "sort"

// World is the central entity registry. Component data lives in typed
// Stores created against the world.
type World struct {
	nextID EntityID
	alive  map[EntityID]bool
	stores []store
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]bool),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// DestroyEntity marks the entity dead and removes it from every store.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	w.alive[id] = false
	for _, s := range w.stores {
		s.Delete(id)
	}
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Store holds one component type keyed by entity.
type Store[T any] struct {
	world *World
	data  map[EntityID]T
}

// NewStore creates a component store owned by w. Destroying an entity
// removes its entry from every store of the world.
func NewStore[T any](w *World) *Store[T] {
	s := &Store[T]{world: w, data: make(map[EntityID]T)}
	w.stores = append(w.stores, s)
	return s
}

// Set attaches or replaces the component for id. Dead entities are ignored.
func (s *Store[T]) Set(id EntityID, v T) {
	if !s.world.alive[id] {
		return
	}
	s.data[id] = v
}

// Get returns the component for id and whether it was present.
func (s *Store[T]) Get(id EntityID) (T, bool) {
	v, ok := s.data[id]
	return v, ok
}

// Has reports whether id has this component.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

// Delete detaches the component from id.
func (s *Store[T]) Delete(id EntityID) {
	delete(s.data, id)
}

// Len reports how many entities carry the component.
func (s *Store[T]) Len() int {
	return len(s.data)
}

// IDs returns the entities carrying the component in ascending order,
// so systems iterate deterministically.
func (s *Store[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// With returns the entities of s, in ascending order, that also carry
// a component in every one of others.
func (s *Store[T]) With(others ...interface{ Has(EntityID) bool }) []EntityID {
	var out []EntityID
	for _, id := range s.IDs() {
		match := true
		for _, o := range others {
			if !o.Has(id) {
				match = false
				break
			}
		}
		if match {
			out = append(out, id)
		}
	}
	return out
}
