package game

import (
	"math/rand"
	"time"

	"github.com/junseokho/HackClad-sub000/internal/board"
)

// Phase is the room's position in the per-round state machine.
type Phase string

const (
	PhaseForecast Phase = "forecast"
	PhaseDraw     Phase = "draw"
	PhaseDraft    Phase = "draft"
	PhaseAction   Phase = "action"
	PhaseScoring  Phase = "scoring"
)

// MaxRounds is the hard round cap; reaching its end enters scoring.
const MaxRounds = 9

// HandSize is the target hand size players draw up to each round.
const HandSize = 3

// SlotCount is the number of draftable turn slots per round.
const SlotCount = 4

// ForesightCount is how many boss cards are revealed each forecast.
const ForesightCount = 3

// MaxVoltage caps the boss escalation tier.
const MaxVoltage = 3

// PlayerState is the full per-participant state for one room.
type PlayerState struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Character string `json:"character"`

	Hand    []string `json:"hand"`
	Deck    []string `json:"deck"`
	Discard []string `json:"discard"`

	MP     int `json:"mp"`
	CP     int `json:"cp"`
	Injury int `json:"injury"`
	Shards int `json:"shards"`

	// Pos is nil until the player enters the board (and again after
	// positional damage knocks them off).
	Pos    *board.Position `json:"pos,omitempty"`
	Facing board.Facing    `json:"facing"`

	// StandbyOrder is the fixed seat order used to gate draft claims.
	StandbyOrder int `json:"standby_order"`
	// Slot is the claimed turn slot for this round, 0 when unclaimed.
	Slot  int  `json:"slot"`
	Ready bool `json:"ready"`
	// PendingEnhancedPick blocks the first draft until resolved.
	PendingEnhancedPick bool `json:"pending_enhanced_pick"`
	// EnhancedChoices is the pool the pending pick selects from.
	EnhancedChoices []string `json:"enhanced_choices,omitempty"`

	// Turn/round transient flags.
	MovedThisTurn    bool `json:"moved_this_turn"`
	TurnActive       bool `json:"turn_active"`
	CrackUsedRound   bool `json:"crack_used_round"`
	ReformBonusRound bool `json:"reform_bonus_round"`
	OneTimeGuard     int  `json:"one_time_guard"`
	PersistentGuard  int  `json:"persistent_guard"`
	DamageDealtTurn  int  `json:"damage_dealt_turn"`
	MultistrikeBonus int  `json:"multistrike_bonus"`
	Unyielding       bool `json:"unyielding"`

	// CardFlags holds set-now-consume-later markers primed by specific
	// cards (see the bonus table). Cleared at end of the player's step.
	CardFlags map[string]bool `json:"card_flags,omitempty"`

	// TrapTokens are board tiles armed by the trapper's crack skill.
	TrapTokens []board.Position `json:"trap_tokens,omitempty"`
}

// HasCardInHand reports whether code is currently in the player's hand.
func (p *PlayerState) HasCardInHand(code string) bool {
	for _, c := range p.Hand {
		if c == code {
			return true
		}
	}
	return false
}

// RemoveFromHand removes one copy of code from the hand; false if absent.
func (p *PlayerState) RemoveFromHand(code string) bool {
	for i, c := range p.Hand {
		if c == code {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// BossState is the Clad's aggregate.
type BossState struct {
	Pos    board.Position `json:"pos"`
	Facing board.Facing   `json:"facing"`
	HP     int            `json:"hp"`
	// Voltage is the 1..3 escalation tier; monotonically non-decreasing.
	Voltage int      `json:"voltage"`
	Deck    []string `json:"deck"`
	Discard []string `json:"discard"`
	// Foresight is the revealed upcoming cards for this round.
	Foresight []string `json:"foresight"`
	// MovementLocked suppresses scripted move steps for the round.
	MovementLocked bool `json:"movement_locked"`
}

// Legion is a minor scripted hostile spawned by boss actions.
type Legion struct {
	Pos    board.Position `json:"pos"`
	Kind   LegionKind     `json:"kind"`
	Facing board.Facing   `json:"facing"`
	HP     int            `json:"hp"`
}

// ShardPool maps board tiles to dropped victory-point shards.
type ShardPool map[board.Position]int

// Add credits amount shards onto the tile.
func (s ShardPool) Add(p board.Position, amount int) {
	if amount <= 0 {
		return
	}
	s[p] += amount
}

// Take removes and returns all shards on the tile.
func (s ShardPool) Take(p board.Position) int {
	n := s[p]
	delete(s, p)
	return n
}

// QueueKind tags one entry of the built action queue.
type QueueKind string

const (
	QueuePlayer QueueKind = "player"
	QueueBoss   QueueKind = "boss"
	QueueLegion QueueKind = "legion"
)

// QueueEntry is one resolution step of the action phase.
type QueueEntry struct {
	Kind     QueueKind `json:"kind"`
	UserID   string    `json:"user_id,omitempty"`
	BossCard string    `json:"boss_card,omitempty"`
}

// AttackSource tags who owns a pending attack.
type AttackSource string

const (
	AttackSourceBoss   AttackSource = "boss"
	AttackSourceLegion AttackSource = "legion"
)

// PendingAttack is an attack suspended behind an open reaction window.
type PendingAttack struct {
	Source   AttackSource     `json:"source"`
	CardCode string           `json:"card_code,omitempty"`
	Origin   board.Position   `json:"origin"`
	Facing   board.Facing     `json:"facing"`
	Tiles    []board.Position `json:"tiles"`
	Damage   int              `json:"damage"`
	// ResumeIndex is the cursor into the scripted action list where the
	// boss executor continues after the window closes.
	ResumeIndex int `json:"resume_index"`
	// Eligible holds user IDs ordered by slot then identity; Active
	// indexes the player whose reaction is awaited.
	Eligible []string        `json:"eligible"`
	Active   int             `json:"active"`
	Passed   map[string]bool `json:"passed"`
}

// ActiveUser returns the user ID whose reaction is currently awaited.
func (a *PendingAttack) ActiveUser() string {
	if a.Active < 0 || a.Active >= len(a.Eligible) {
		return ""
	}
	return a.Eligible[a.Active]
}

// ChoiceKind enumerates the closed set of timed prompts.
type ChoiceKind int

const (
	// ChoiceReorientClad asks "spend 1 CP to reorient the Clad?".
	ChoiceReorientClad ChoiceKind = iota
	// ChoiceReplayCard asks whether to immediately replay a card just
	// returned to hand.
	ChoiceReplayCard
)

func (k ChoiceKind) String() string {
	switch k {
	case ChoiceReorientClad:
		return "reorient-clad"
	case ChoiceReplayCard:
		return "replay-card"
	default:
		return "unknown"
	}
}

// PendingChoice is a timed yes/no prompt for exactly one player. Resolution
// by answer or by timeout is a single idempotent transition keyed by ID.
type PendingChoice struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	Kind     ChoiceKind `json:"kind"`
	CardCode string     `json:"card_code,omitempty"`
	Default  bool       `json:"default"`
	Deadline time.Time  `json:"deadline"`
}

// ScoreRow is one entry of the final ranking.
type ScoreRow struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	ShardVP  int    `json:"shard_vp"`
	CardVP   int    `json:"card_vp"`
	Injury   int    `json:"injury"`
	Score    int    `json:"score"`
}

// Room is the authoritative aggregate for one match. It is mutated only by
// the engine, one intent at a time.
type Room struct {
	ID       string        `json:"id"`
	Round    int           `json:"round"`
	Phase    Phase         `json:"phase"`
	Finished bool          `json:"finished"`
	Players  []PlayerState `json:"players"`
	Boss     BossState     `json:"boss"`
	Legions  []Legion      `json:"legions"`
	Shards   ShardPool     `json:"-"`

	Queue  []QueueEntry `json:"queue"`
	Cursor int          `json:"cursor"`

	// At most one interrupt is open at any time.
	Reaction *PendingAttack `json:"reaction,omitempty"`
	Choice   *PendingChoice `json:"choice,omitempty"`
	// DeferredChoices queues prompts requested while another interrupt was
	// open; they surface one at a time once resolution resumes.
	DeferredChoices []PendingChoice `json:"-"`

	Ranking []ScoreRow `json:"ranking,omitempty"`
	// Log keeps the most recent resolution summary lines.
	Log []string `json:"log,omitempty"`

	StatsCounted bool  `json:"-"`
	Seed         int64 `json:"-"`

	rng *rand.Rand
}

// Rand returns the room-owned deterministic source, seeding it on first use
// so the same intent sequence replays identically.
func (r *Room) Rand() *rand.Rand {
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(r.Seed))
	}
	return r.rng
}

// PlayerByID returns the player with the given identity, or nil.
func (r *Room) PlayerByID(userID string) *PlayerState {
	for i := range r.Players {
		if r.Players[i].UserID == userID {
			return &r.Players[i]
		}
	}
	return nil
}

// PlayerBySlot returns the player who claimed the given turn slot, or nil.
func (r *Room) PlayerBySlot(slot int) *PlayerState {
	for i := range r.Players {
		if r.Players[i].Slot == slot {
			return &r.Players[i]
		}
	}
	return nil
}

// LegionAt returns the legion occupying the tile, or nil.
func (r *Room) LegionAt(p board.Position) *Legion {
	for i := range r.Legions {
		if r.Legions[i].Pos == p {
			return &r.Legions[i]
		}
	}
	return nil
}

// RemoveLegionAt deletes the legion occupying the tile, if any.
func (r *Room) RemoveLegionAt(p board.Position) {
	for i := range r.Legions {
		if r.Legions[i].Pos == p {
			r.Legions = append(r.Legions[:i], r.Legions[i+1:]...)
			return
		}
	}
}
