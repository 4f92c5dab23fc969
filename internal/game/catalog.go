package game

import (
	"strings"

	"github.com/junseokho/HackClad-sub000/internal/board"
)

// EffectType tags what a catalog card does when played.
type EffectType string

const (
	EffectAttack     EffectType = "attack"
	EffectReaction   EffectType = "reaction"
	EffectSupport    EffectType = "support"
	EffectBossScript EffectType = "boss-script"
)

// CardDef is the immutable catalog definition of a player card. The config
// file is the source of truth; definitions never change during a match.
type CardDef struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Cost        int            `json:"cost"`
	EffectType  EffectType     `json:"effect_type"`
	Range       []board.Offset `json:"range,omitempty"`
	Attack      int            `json:"attack"`
	Guard       int            `json:"guard"`
	Move        int            `json:"move"`
	Multistrike int            `json:"multistrike"`
	GrantMP     int            `json:"grant_mp"`
	GrantCP     int            `json:"grant_cp"`
	// VictoryPoints is the card's intrinsic VP counted at scoring.
	VictoryPoints int `json:"victory_points"`
	// Enhanced cards are only obtainable through the pre-draft pick.
	Enhanced bool `json:"enhanced"`
	// Notes is free rules text shown to clients; never parsed at runtime.
	Notes string `json:"notes,omitempty"`
}

// IsAttack reports whether playing this card resolves attack targeting.
func (d *CardDef) IsAttack() bool {
	return d.EffectType == EffectAttack && len(d.Range) > 0
}

// BossActionKind enumerates the closed set of scripted boss actions.
type BossActionKind int

const (
	BossActionMove BossActionKind = iota
	BossActionTurn
	BossActionAttack
	BossActionSummon
	BossActionMarkShard
	BossActionSpecial
)

var bossActionNames = map[BossActionKind]string{
	BossActionMove:      "move",
	BossActionTurn:      "turn",
	BossActionAttack:    "attack",
	BossActionSummon:    "summon",
	BossActionMarkShard: "mark-shard",
	BossActionSpecial:   "special",
}

func (k BossActionKind) String() string {
	if s, ok := bossActionNames[k]; ok {
		return s
	}
	return "unknown"
}

// BossActionKindFromString maps a config token to its kind.
func BossActionKindFromString(s string) (BossActionKind, bool) {
	for k, name := range bossActionNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return k, true
		}
	}
	return 0, false
}

// BossAction is one step of a scripted boss card. Which fields are
// meaningful depends on Kind:
//
//	move:       Steps tiles forward (skipped while movement is locked)
//	turn:       Right=true rotates clockwise, otherwise counter-clockwise
//	attack:     Offsets are target tiles, Damage 0 means "current voltage"
//	summon:     Offsets are spawn tiles (legion kind comes from the card)
//	mark-shard: Offsets receive Amount shards each (Amount 0 means 1)
//	special:    teleport to the grid origin, then summon at Offsets
type BossAction struct {
	Kind    BossActionKind `json:"kind"`
	Steps   int            `json:"steps,omitempty"`
	Right   bool           `json:"right,omitempty"`
	Offsets []board.Offset `json:"offsets,omitempty"`
	Damage  int            `json:"damage,omitempty"`
	Amount  int            `json:"amount,omitempty"`
}

// LegionKind distinguishes attacking heads from inert tails.
type LegionKind string

const (
	LegionHead LegionKind = "head"
	LegionTail LegionKind = "tail"
)

// BossCardDef is one scripted action-card of the Clad's deck.
type BossCardDef struct {
	Code    string       `json:"code"`
	Name    string       `json:"name"`
	Tier    int          `json:"tier"`
	Actions []BossAction `json:"actions"`
	// SummonKind applies to every summon/special step of this card. The
	// generic summon action carries no kind of its own.
	SummonKind LegionKind `json:"summon_kind,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// CharacterDef describes a playable character and its crack skill.
type CharacterDef struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CrackName string `json:"crack_name"`
	CrackCost int    `json:"crack_cost"`
	// CrackKey routes crack-skill execution in the engine.
	CrackKey string `json:"crack_key"`
	Notes    string `json:"notes,omitempty"`
}

// Crack skill keys understood by the engine.
const (
	CrackKeyAegis   = "aegis_bastion"
	CrackKeyStriker = "striker_surge"
	CrackKeyTrapper = "trapper_snare"
	CrackKeyWarden  = "warden_shift"
)

// Catalog is the read-only card/boss/character lookup used by the engine.
type Catalog struct {
	Cards      map[string]CardDef
	BossCards  map[string]BossCardDef
	Characters map[string]CharacterDef
	// BossTiers holds the boss card codes per voltage tier (1..3).
	BossTiers map[int][]string
}

// safeDefaultCard is returned for unknown codes so a malformed reference
// degrades to a no-op support card instead of failing the room.
var safeDefaultCard = CardDef{Code: "UNKNOWN", Name: "Unknown Card", EffectType: EffectSupport}

// Card returns the definition for code, falling back to a harmless default
// when the code is not in the catalog.
func (c *Catalog) Card(code string) CardDef {
	if d, ok := c.Cards[code]; ok {
		return d
	}
	return safeDefaultCard
}

// BossCard returns the scripted card for code; ok is false for unknown codes.
func (c *Catalog) BossCard(code string) (BossCardDef, bool) {
	d, ok := c.BossCards[code]
	return d, ok
}

// Character returns the character definition for code.
func (c *Catalog) Character(code string) (CharacterDef, bool) {
	d, ok := c.Characters[code]
	return d, ok
}

// NewCatalog indexes the given definitions.
func NewCatalog(cards []CardDef, bossCards []BossCardDef, characters []CharacterDef) *Catalog {
	c := &Catalog{
		Cards:      make(map[string]CardDef, len(cards)),
		BossCards:  make(map[string]BossCardDef, len(bossCards)),
		Characters: make(map[string]CharacterDef, len(characters)),
		BossTiers:  make(map[int][]string),
	}
	for _, d := range cards {
		c.Cards[d.Code] = d
	}
	for _, d := range bossCards {
		c.BossCards[d.Code] = d
		c.BossTiers[d.Tier] = append(c.BossTiers[d.Tier], d.Code)
	}
	for _, d := range characters {
		c.Characters[d.Code] = d
	}
	return c
}
