package engine

import (
	"testing"

	"github.com/junseokho/HackClad-sub000/internal/board"
)

func TestPlayCard_AttackHitsTheBoss(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")

	// p1 at (0,-1) facing north: the one-tile range lands on the boss at
	// the origin.
	if err := PlayCard(r, cat, "p1", "ATK", nil); err != nil {
		t.Fatalf("PlayCard: %v", err)
	}
	if r.Boss.HP != 28 {
		t.Fatalf("expected boss HP 28, got %d", r.Boss.HP)
	}
	if p1.MP != 2 {
		t.Fatalf("expected MP cost paid, got %d", p1.MP)
	}
	if p1.DamageDealtTurn != 2 {
		t.Fatalf("expected 2 damage recorded, got %d", p1.DamageDealtTurn)
	}
	if len(p1.Discard) != 1 || p1.Discard[0] != "ATK" {
		t.Fatalf("played card must reach the discard exactly once: %v", p1.Discard)
	}
	if p1.HasCardInHand("ATK") {
		t.Fatalf("the played card must leave the hand")
	}
}

func TestPlayCard_Rejections(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")

	if err := PlayCard(r, cat, "p1", "NOPE", nil); err != ErrCardNotInHand {
		t.Fatalf("expected ErrCardNotInHand, got %v", err)
	}
	p1.MP = 0
	if err := PlayCard(r, cat, "p1", "ATK", nil); err != ErrNotEnoughMP {
		t.Fatalf("expected ErrNotEnoughMP, got %v", err)
	}
	p1.MP = 3
	p1.Pos = nil
	if err := PlayCard(r, cat, "p1", "ATK", nil); err != ErrNotOnBoard {
		t.Fatalf("expected ErrNotOnBoard for an off-board attack, got %v", err)
	}
	if err := PlayCard(r, cat, "p2", "GRD", nil); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if p1.MP != 3 || len(p1.Discard) != 0 {
		t.Fatalf("rejected plays must not mutate the player")
	}
}

func TestPlayCard_GuardKinds(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")

	// reaction-tagged guard is one-time
	if err := PlayCard(r, cat, "p1", "GRD", nil); err != nil {
		t.Fatalf("PlayCard GRD: %v", err)
	}
	if p1.OneTimeGuard != 3 || p1.PersistentGuard != 0 {
		t.Fatalf("reaction guard must be one-time: otg=%d pg=%d", p1.OneTimeGuard, p1.PersistentGuard)
	}

	// support guard persists
	if err := PlayCard(r, cat, "p1", "SUP", nil); err != nil {
		t.Fatalf("PlayCard SUP: %v", err)
	}
	if p1.PersistentGuard != 1 {
		t.Fatalf("support guard must persist: pg=%d", p1.PersistentGuard)
	}
}

func TestPlayCard_MoveCollectsShards(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")
	p1.Facing = board.FacingEast
	// the two tiles east of (0,-1)
	r.Shards.Add(board.Position{X: 1, Y: -1}, 2)
	r.Shards.Add(board.Position{X: 2, Y: -1}, 1)

	if err := PlayCard(r, cat, "p1", "MOV", nil); err != nil {
		t.Fatalf("PlayCard MOV: %v", err)
	}
	if p1.Shards != 3 {
		t.Fatalf("expected shards collected along the path, got %d", p1.Shards)
	}
	if p1.Pos == nil || *p1.Pos != (board.Position{X: 2, Y: -1}) {
		t.Fatalf("unexpected end tile: %v", p1.Pos)
	}
	if !p1.MovedThisTurn {
		t.Fatalf("move must mark MovedThisTurn")
	}
}

func TestWindingStance_PrimesCleaverArc(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")

	if err := PlayCard(r, cat, "p1", "ST10", nil); err != nil {
		t.Fatalf("PlayCard ST10: %v", err)
	}
	if !p1.CardFlags["wound_up"] {
		t.Fatalf("stance must prime the follow-up")
	}
	if err := PlayCard(r, cat, "p1", "ST01", nil); err != nil {
		t.Fatalf("PlayCard ST01: %v", err)
	}
	// printed 2 plus the +2 stance bonus
	if r.Boss.HP != 26 {
		t.Fatalf("expected boss HP 26, got %d", r.Boss.HP)
	}
	if p1.CardFlags["wound_up"] {
		t.Fatalf("the stance flag must be consumed")
	}
}

func TestBasicActions(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")

	if err := BasicAction(r, cat, "p1", "fly", nil, "SUP"); err != ErrUnknownBasic {
		t.Fatalf("expected ErrUnknownBasic, got %v", err)
	}
	if err := BasicAction(r, cat, "p1", BasicMove, nil, "NOPE"); err != ErrCardNotInHand {
		t.Fatalf("expected ErrCardNotInHand, got %v", err)
	}

	east := board.FacingEast
	if err := BasicAction(r, cat, "p1", BasicMove, &east, "SUP"); err != nil {
		t.Fatalf("BasicAction move: %v", err)
	}
	if *p1.Pos != (board.Position{X: 1, Y: -1}) {
		t.Fatalf("basic move must step one tile, got %v", p1.Pos)
	}
	if p1.HasCardInHand("SUP") {
		t.Fatalf("the basic action payment must leave the hand")
	}

	if err := BasicAction(r, cat, "p1", BasicBrace, nil, "GRD"); err != nil {
		t.Fatalf("BasicAction brace: %v", err)
	}
	if p1.OneTimeGuard != 1 {
		t.Fatalf("brace must grant a one-time guard point")
	}

	mpBefore := p1.MP
	if err := BasicAction(r, cat, "p1", BasicFocus, nil, "MOV"); err != nil {
		t.Fatalf("BasicAction focus: %v", err)
	}
	if p1.MP != mpBefore+1 {
		t.Fatalf("focus must grant +1 MP")
	}
}

func TestCPActions(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")
	p1.CP = 2

	if err := CPAction(r, cat, "p1", "warp", nil); err != ErrUnknownCPAction {
		t.Fatalf("expected ErrUnknownCPAction, got %v", err)
	}

	if err := CPAction(r, cat, "p1", CPBulwark, nil); err != nil {
		t.Fatalf("CPAction bulwark: %v", err)
	}
	if p1.PersistentGuard != 1 || p1.CP != 1 {
		t.Fatalf("bulwark must cost 1 CP and grant persistent guard: pg=%d cp=%d", p1.PersistentGuard, p1.CP)
	}

	if err := CPAction(r, cat, "p1", CPResupply, nil); err != ErrNotEnoughCP {
		t.Fatalf("expected ErrNotEnoughCP for resupply at 1 CP, got %v", err)
	}

	handBefore := len(p1.Hand)
	p1.CP = 2
	p1.Deck = []string{"ATK"}
	if err := CPAction(r, cat, "p1", CPResupply, nil); err != nil {
		t.Fatalf("CPAction resupply: %v", err)
	}
	if len(p1.Hand) != handBefore+1 || p1.CP != 0 {
		t.Fatalf("resupply must cost 2 CP and draw a card")
	}
}

func TestCrackSkill_AegisOncePerRound(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")
	p1.CP = 2

	if err := CrackSkill(r, cat, "p1", nil, nil); err != nil {
		t.Fatalf("CrackSkill: %v", err)
	}
	if !p1.Unyielding || p1.OneTimeGuard != 2 {
		t.Fatalf("aegis bastion must grant unyielding and a guard of 2")
	}
	if p1.CP != 0 {
		t.Fatalf("crack cost must be paid, cp=%d", p1.CP)
	}

	p1.CP = 2
	if err := CrackSkill(r, cat, "p1", nil, nil); err != ErrCrackUsed {
		t.Fatalf("expected ErrCrackUsed, got %v", err)
	}
	if p1.CP != 2 {
		t.Fatalf("a rejected crack must not spend CP")
	}
}

func TestCrackSkill_StrikerTriplesTheNextAttack(t *testing.T) {
	r, cat := actionRoom()
	r.PlayerByID("p1").TurnActive = false
	p2 := r.PlayerByID("p2")
	p2.TurnActive = true
	p2.Pos = pos(0, -1)
	p2.Facing = board.FacingNorth
	p2.Hand = []string{"ATK"}
	p2.CP = 2
	p2.MP = 1

	if err := CrackSkill(r, cat, "p2", nil, nil); err != nil {
		t.Fatalf("CrackSkill: %v", err)
	}
	if p2.MultistrikeBonus != 3 {
		t.Fatalf("expected a triple strike, got %d", p2.MultistrikeBonus)
	}
	if err := PlayCard(r, cat, "p2", "ATK", nil); err != nil {
		t.Fatalf("PlayCard: %v", err)
	}
	if r.Boss.HP != 24 {
		t.Fatalf("three strikes of 2 must land 6, boss HP=%d", r.Boss.HP)
	}
}

func TestCrackSkill_TrapperSnareDetonates(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")
	p1.Character = "trapper"
	p1.CP = 1

	target := board.Position{X: 0, Y: -1}
	if err := CrackSkill(r, cat, "p1", nil, &target); err != nil {
		t.Fatalf("CrackSkill: %v", err)
	}
	if len(p1.TrapTokens) != 1 || p1.TrapTokens[0] != target {
		t.Fatalf("snare must be armed at the target: %v", p1.TrapTokens)
	}

	// boss at origin facing south steps onto the snare
	rc := newRoomContext(r, cat)
	rc.bossStepForward(1)
	if r.Boss.HP != 28 {
		t.Fatalf("snare must deal 2 to the boss, HP=%d", r.Boss.HP)
	}
	if len(p1.TrapTokens) != 0 {
		t.Fatalf("a detonated snare must be consumed")
	}
}

func TestCrackSkill_WardenShiftRange(t *testing.T) {
	r, cat := actionRoom()
	p1 := r.PlayerByID("p1")
	p1.Character = "warden"
	p1.CP = 1

	far := board.Position{X: 2, Y: 1}
	if err := CrackSkill(r, cat, "p1", nil, &far); err != nil {
		t.Fatalf("CrackSkill: %v", err)
	}
	// (0,-1) to (2,1) is 4 tiles over the torus: out of range, position holds
	if *p1.Pos != (board.Position{X: 0, Y: -1}) {
		t.Fatalf("an out-of-range shift must not move the player: %v", p1.Pos)
	}
}
