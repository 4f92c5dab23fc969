package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// Seat is one matched participant as delivered by matchmaking.
type Seat struct {
	UserID    string
	Nickname  string
	Character string
	// StarterDeck is the resolved card pool the player brings in.
	StarterDeck []string
	// EnhancedChoices is the pool the player picks one enhanced card from
	// before the first draft.
	EnhancedChoices []string
}

// Setup carries everything needed to build the initial room state.
type Setup struct {
	RoomID        string
	Seed          int64
	BossHitPoints int
	Seats         []Seat
}

const (
	startingMP = 1
	startingCP = 1
)

// NewRoom builds the authoritative initial state for a match and runs the
// first forecast. The engine owns the returned room exclusively.
func NewRoom(cat *game.Catalog, setup Setup) *game.Room {
	r := &game.Room{
		ID:     setup.RoomID,
		Round:  1,
		Phase:  game.PhaseForecast,
		Shards: make(game.ShardPool),
		Seed:   setup.Seed,
		Boss: game.BossState{
			Pos:     board.Position{X: 0, Y: 0},
			Facing:  board.FacingSouth,
			HP:      setup.BossHitPoints,
			Voltage: 1,
		},
	}
	for i, seat := range setup.Seats {
		p := game.PlayerState{
			UserID:       seat.UserID,
			Nickname:     seat.Nickname,
			Character:    seat.Character,
			MP:           startingMP,
			CP:           startingCP,
			Facing:       board.FacingNorth,
			StandbyOrder: i + 1,
			Deck:         append([]string(nil), seat.StarterDeck...),
			CardFlags:    make(map[string]bool),
		}
		if len(seat.EnhancedChoices) > 0 {
			p.EnhancedChoices = append([]string(nil), seat.EnhancedChoices...)
			p.PendingEnhancedPick = true
		}
		r.Players = append(r.Players, p)
	}
	rc := newRoomContext(r, cat)
	for i := range r.Players {
		rc.shuffle(r.Players[i].Deck)
	}
	r.Boss.Deck = append([]string(nil), cat.BossTiers[1]...)
	rc.shuffle(r.Boss.Deck)
	rc.enterForecast()
	return r
}

// shuffle permutes codes in place using the room-owned source.
func (rc *roomContext) shuffle(codes []string) {
	rng := rc.r.Rand()
	rng.Shuffle(len(codes), func(i, j int) {
		codes[i], codes[j] = codes[j], codes[i]
	})
}
