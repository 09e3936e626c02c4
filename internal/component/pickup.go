package component

import "stick-battle-arena/internal/item"

// Pickup is an item lying on the floor, waiting for a player to walk over it.
type Pickup struct {
	Item *item.Item
}
