package component

// TagPlayer marks a player-controlled entity.
type TagPlayer struct{}

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}
