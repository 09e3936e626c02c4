package arena

import (
	"time"

	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/item"
	"stick-battle-arena/internal/score"
)

// ItemEvent reports something that happened to an item.
type ItemEvent struct {
	Item   *item.Item
	Kind   item.Kind
	Player ecs.EntityID // NilEntity when no player is involved
}

// DeathEvent reports a player death after the score and lives were updated.
type DeathEvent struct {
	Victim     ecs.EntityID
	Killer     ecs.EntityID
	LivesLeft  int
	Eliminated bool
}

// Result is the outcome of a finished match.
type Result struct {
	MatchID   string        `json:"match_id"`
	Winner    ecs.EntityID  `json:"winner"` // NilEntity for a draw
	Standings []score.Entry `json:"standings"`
	Duration  time.Duration `json:"duration"`
	Reason    string        `json:"reason"`
}
