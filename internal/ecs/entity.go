package ecs

// EntityID uniquely identifies an entity in the world. Players are entities,
// so an EntityID doubles as the player identifier everywhere in the game.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// store is the type-erased view the World keeps of every component store.
type store interface {
	Delete(id EntityID)
}
