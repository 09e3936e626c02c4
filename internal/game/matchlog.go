package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"stick-battle-arena/internal/arena"
)

// MatchRecord is one finished match as stored in matches.jsonl.
type MatchRecord struct {
	arena.Result
	FinishedAt time.Time `json:"finished_at"`
	Seed       int64     `json:"seed,omitempty"`
}

// saveMatchLog appends the completed match as a single JSON line to matches.jsonl.
// Errors are silently discarded so a disk problem never crashes the game.
func saveMatchLog(rec MatchRecord) {
	dir, err := matchLogDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "matches.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck // best-effort write
}

// matchLogDir returns the directory where match logs are stored.
// Follows the XDG Base Directory layout: $XDG_DATA_HOME/stick-battle-arena,
// defaulting to ~/.local/share/stick-battle-arena.
func matchLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "stick-battle-arena"), nil
}
