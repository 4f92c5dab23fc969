package service

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// ShardTile is one board tile holding dropped shards, in wire form.
type ShardTile struct {
	Pos   board.Position `json:"pos"`
	Count int            `json:"count"`
}

// InterruptView summarizes the open interrupt so clients know who must act.
type InterruptView struct {
	Kind string `json:"kind"`
	// reaction fields
	ActiveUser string           `json:"active_user,omitempty"`
	Tiles      []board.Position `json:"tiles,omitempty"`
	Damage     int              `json:"damage,omitempty"`
	// choice fields
	ChoiceID   string    `json:"choice_id,omitempty"`
	ChoiceKind string    `json:"choice_kind,omitempty"`
	CardCode   string    `json:"card_code,omitempty"`
	Deadline   time.Time `json:"deadline,omitempty"`
}

// Snapshot is the full committed room state sent to clients after every
// applied intent. It is self-contained: a client can render from any single
// snapshot without history.
type Snapshot struct {
	RoomID   string             `json:"room_id"`
	Round    int                `json:"round"`
	Phase    game.Phase         `json:"phase"`
	Finished bool               `json:"finished"`
	Players  []game.PlayerState `json:"players"`
	Boss     game.BossState     `json:"boss"`
	Legions  []game.Legion      `json:"legions"`
	Shards   []ShardTile        `json:"shards"`

	Queue  []game.QueueEntry `json:"queue"`
	Cursor int               `json:"cursor"`

	Interrupt *InterruptView `json:"interrupt,omitempty"`

	Ranking []game.ScoreRow `json:"ranking,omitempty"`
	Log     []string        `json:"log,omitempty"`
}

// Marshal encodes the snapshot for the watch stream.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func buildSnapshot(r *game.Room) Snapshot {
	snap := Snapshot{
		RoomID:   r.ID,
		Round:    r.Round,
		Phase:    r.Phase,
		Finished: r.Finished,
		Players:  r.Players,
		Boss:     r.Boss,
		Legions:  r.Legions,
		Shards:   shardTiles(r.Shards),
		Queue:    r.Queue,
		Cursor:   r.Cursor,
		Log:      r.Log,
	}
	if r.Phase == game.PhaseScoring {
		snap.Ranking = r.Ranking
	}
	switch {
	case r.Reaction != nil:
		snap.Interrupt = &InterruptView{
			Kind:       "reaction",
			ActiveUser: r.Reaction.ActiveUser(),
			Tiles:      r.Reaction.Tiles,
			Damage:     r.Reaction.Damage,
		}
	case r.Choice != nil:
		snap.Interrupt = &InterruptView{
			Kind:       "choice",
			ActiveUser: r.Choice.UserID,
			ChoiceID:   r.Choice.ID,
			ChoiceKind: r.Choice.Kind.String(),
			CardCode:   r.Choice.CardCode,
			Deadline:   r.Choice.Deadline,
		}
	}
	return snap
}

// shardTiles flattens the pool into a stable wire list.
func shardTiles(pool game.ShardPool) []ShardTile {
	if len(pool) == 0 {
		return nil
	}
	tiles := make([]ShardTile, 0, len(pool))
	for p, n := range pool {
		tiles = append(tiles, ShardTile{Pos: p, Count: n})
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Pos.Y != tiles[j].Pos.Y {
			return tiles[i].Pos.Y < tiles[j].Pos.Y
		}
		return tiles[i].Pos.X < tiles[j].Pos.X
	})
	return tiles
}
