package engine

import (
	"testing"

	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

func testCatalog() *game.Catalog {
	cards := []game.CardDef{
		{Code: "ATK", Name: "Test Strike", Cost: 1, EffectType: game.EffectAttack, Attack: 2, Range: []board.Offset{{DX: 0, DY: 1}}},
		{Code: "GRD", Name: "Test Guard", Cost: 1, EffectType: game.EffectReaction, Guard: 3},
		{Code: "SUP", Name: "Test Support", Cost: 0, EffectType: game.EffectSupport, Guard: 1, VictoryPoints: 1},
		{Code: "MOV", Name: "Test Steps", Cost: 0, EffectType: game.EffectSupport, Move: 2},
		{Code: "ST01", Name: "Cleaver Arc", Cost: 1, EffectType: game.EffectAttack, Attack: 2, Range: []board.Offset{{DX: 0, DY: 1}}},
		{Code: "ST09", Name: "Gale Ward", Cost: 1, EffectType: game.EffectReaction, Guard: 2},
		{Code: "ST10", Name: "Winding Stance", Cost: 0, EffectType: game.EffectSupport},
		{Code: "EN06", Name: "Echo", Cost: 0, EffectType: game.EffectSupport, VictoryPoints: 1, Enhanced: true},
		{Code: "ENH", Name: "Test Enhanced", Cost: 0, EffectType: game.EffectSupport, VictoryPoints: 2, Enhanced: true},
	}
	bossCards := []game.BossCardDef{
		{Code: "B1A", Name: "Idle Turn A", Tier: 1, Actions: []game.BossAction{{Kind: game.BossActionTurn, Right: true}}},
		{Code: "B1B", Name: "Idle Turn B", Tier: 1, Actions: []game.BossAction{{Kind: game.BossActionTurn, Right: true}}},
		{Code: "B1C", Name: "Idle Turn C", Tier: 1, Actions: []game.BossAction{{Kind: game.BossActionTurn, Right: true}}},
		{Code: "B2A", Name: "Stalk", Tier: 2, Actions: []game.BossAction{{Kind: game.BossActionMove, Steps: 1}}},
		{Code: "BATK", Name: "Maul", Tier: 3, Actions: []game.BossAction{
			{Kind: game.BossActionAttack, Offsets: []board.Offset{{DX: 0, DY: 1}}, Damage: 2},
			{Kind: game.BossActionTurn, Right: true},
		}},
		{Code: "BSUM", Name: "Brood", Tier: 3, SummonKind: game.LegionHead, Actions: []game.BossAction{
			{Kind: game.BossActionSummon, Offsets: []board.Offset{{DX: 0, DY: 1}, {DX: 1, DY: 0}}},
		}},
		{Code: "BSHARD", Name: "Crystallize", Tier: 3, Actions: []game.BossAction{
			{Kind: game.BossActionMarkShard, Offsets: []board.Offset{{DX: 0, DY: 1}}, Amount: 2},
		}},
	}
	chars := []game.CharacterDef{
		{Code: "aegis", Name: "Aegis", CrackName: "Bastion", CrackCost: 2, CrackKey: game.CrackKeyAegis},
		{Code: "striker", Name: "Striker", CrackName: "Surge", CrackCost: 2, CrackKey: game.CrackKeyStriker},
		{Code: "trapper", Name: "Trapper", CrackName: "Snare", CrackCost: 1, CrackKey: game.CrackKeyTrapper},
		{Code: "warden", Name: "Warden", CrackName: "Shift", CrackCost: 1, CrackKey: game.CrackKeyWarden},
	}
	return game.NewCatalog(cards, bossCards, chars)
}

var testDeck = []string{"ATK", "ATK", "GRD", "SUP", "MOV"}

// newTestRoom builds a fresh two-player room right after matchmaking.
func newTestRoom() (*game.Room, *game.Catalog) {
	cat := testCatalog()
	r := NewRoom(cat, Setup{
		RoomID:        "room-1",
		Seed:          7,
		BossHitPoints: 30,
		Seats: []Seat{
			{UserID: "p1", Nickname: "P1", Character: "aegis", StarterDeck: testDeck},
			{UserID: "p2", Nickname: "P2", Character: "striker", StarterDeck: testDeck},
		},
	})
	return r, cat
}

func readyAll(t *testing.T, r *game.Room, cat *game.Catalog) {
	t.Helper()
	for _, id := range []string{"p1", "p2"} {
		if err := MarkReady(r, cat, id); err != nil {
			t.Fatalf("MarkReady(%s): %v", id, err)
		}
	}
}

// toDraft drives a fresh room through forecast and draw.
func toDraft(t *testing.T, r *game.Room, cat *game.Catalog) {
	t.Helper()
	readyAll(t, r, cat)
	if r.Phase != game.PhaseDraw {
		t.Fatalf("expected draw phase, got %s", r.Phase)
	}
	readyAll(t, r, cat)
	if r.Phase != game.PhaseDraft {
		t.Fatalf("expected draft phase, got %s", r.Phase)
	}
}

func pos(x, y int) *board.Position {
	p := board.Position{X: x, Y: y}
	return &p
}

// actionRoom builds a room frozen mid-action-phase with both players on the
// board and p1 acting. The queue holds p1's step so interrupt resolution
// has somewhere sane to resume.
func actionRoom() (*game.Room, *game.Catalog) {
	cat := testCatalog()
	r := &game.Room{
		ID:     "room-t",
		Round:  1,
		Phase:  game.PhaseAction,
		Shards: make(game.ShardPool),
		Seed:   11,
		Boss: game.BossState{
			Pos:     board.Position{X: 0, Y: 0},
			Facing:  board.FacingSouth,
			HP:      30,
			Voltage: 1,
		},
		Players: []game.PlayerState{
			{
				UserID: "p1", Nickname: "P1", Character: "aegis",
				MP: 3, CP: 3, Slot: 1, StandbyOrder: 1,
				Pos: pos(0, -1), Facing: board.FacingNorth,
				Hand: []string{"ATK", "GRD", "SUP", "MOV", "ST01", "ST09", "ST10", "EN06"},
				TurnActive: true, CardFlags: make(map[string]bool),
			},
			{
				UserID: "p2", Nickname: "P2", Character: "striker",
				MP: 3, CP: 3, Slot: 2, StandbyOrder: 2,
				Pos: pos(2, 2), Facing: board.FacingNorth,
				Hand: []string{"GRD"}, CardFlags: make(map[string]bool),
			},
		},
		Queue:  []game.QueueEntry{{Kind: game.QueuePlayer, UserID: "p1"}, {Kind: game.QueuePlayer, UserID: "p2"}},
		Cursor: 0,
	}
	return r, cat
}
