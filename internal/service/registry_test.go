package service

import (
	"testing"
	"time"

	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/engine"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

func testCatalog() *game.Catalog {
	cards := []game.CardDef{
		{Code: "ATK", Name: "Strike", Cost: 1, EffectType: game.EffectAttack, Attack: 2, Range: []board.Offset{{DX: 0, DY: 1}}},
		{Code: "GRD", Name: "Guard", Cost: 1, EffectType: game.EffectReaction, Guard: 3},
		{Code: "SUP", Name: "Support", EffectType: game.EffectSupport, Guard: 1},
		{Code: "ST09", Name: "Gale Ward", EffectType: game.EffectReaction, Guard: 2},
	}
	bossCards := []game.BossCardDef{
		{Code: "B1A", Name: "Turn A", Tier: 1, Actions: []game.BossAction{{Kind: game.BossActionTurn, Right: true}}},
		{Code: "B1B", Name: "Turn B", Tier: 1, Actions: []game.BossAction{{Kind: game.BossActionTurn, Right: true}}},
		{Code: "B1C", Name: "Turn C", Tier: 1, Actions: []game.BossAction{{Kind: game.BossActionTurn, Right: true}}},
	}
	chars := []game.CharacterDef{
		{Code: "aegis", Name: "Aegis", CrackCost: 2, CrackKey: game.CrackKeyAegis},
		{Code: "striker", Name: "Striker", CrackCost: 2, CrackKey: game.CrackKeyStriker},
	}
	return game.NewCatalog(cards, bossCards, chars)
}

func testSeats() []engine.Seat {
	deck := []string{"ATK", "ATK", "GRD", "SUP"}
	return []engine.Seat{
		{UserID: "u1", Nickname: "U1", Character: "aegis", StarterDeck: deck},
		{UserID: "u2", Nickname: "U2", Character: "striker", StarterDeck: deck},
	}
}

func newTestRegistry() *Registry {
	return NewRegistry(testCatalog(), nil, 5*time.Second, 30)
}

func TestCreateRoom_ValidatesSeatCount(t *testing.T) {
	reg := newTestRegistry()

	if _, err := reg.CreateRoom("t", testSeats()[:1]); err != ErrNoSeats {
		t.Fatalf("1 seat: expected ErrNoSeats, got %v", err)
	}
	five := append(testSeats(), testSeats()...)
	five = append(five, testSeats()[0])
	if _, err := reg.CreateRoom("t", five[:5]); err != ErrNoSeats {
		t.Fatalf("5 seats: expected ErrNoSeats, got %v", err)
	}
}

func TestCreateRoom_DedupesOnTicket(t *testing.T) {
	reg := newTestRegistry()

	a, err := reg.CreateRoom("ticket-1", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	b, err := reg.CreateRoom("ticket-1", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if a.RoomID != b.RoomID {
		t.Fatalf("the same ticket must resolve to one room: %s vs %s", a.RoomID, b.RoomID)
	}
	if a.Round != 1 || a.Phase != game.PhaseForecast {
		t.Fatalf("a fresh room starts at round 1 forecast, got round %d phase %s", a.Round, a.Phase)
	}
}

func TestDispatch_Errors(t *testing.T) {
	reg := newTestRegistry()
	snap, err := reg.CreateRoom("t", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if _, err := reg.Dispatch("no-such-room", "u1", Intent{Kind: IntentMarkReady}); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, err := reg.Dispatch(snap.RoomID, "u1", Intent{Kind: "teleport"}); err != ErrUnknownIntent {
		t.Fatalf("expected ErrUnknownIntent, got %v", err)
	}
	if _, err := reg.Dispatch(snap.RoomID, "u1", Intent{Kind: IntentPlayCard, Card: "ATK", Facing: "up"}); err != ErrBadFacing {
		t.Fatalf("expected ErrBadFacing, got %v", err)
	}
}

func TestDispatch_MarkReadyAdvancesThePhase(t *testing.T) {
	reg := newTestRegistry()
	snap, err := reg.CreateRoom("t", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if _, err := reg.Dispatch(snap.RoomID, "u1", Intent{Kind: IntentMarkReady}); err != nil {
		t.Fatalf("Dispatch u1: %v", err)
	}
	out, err := reg.Dispatch(snap.RoomID, "u2", Intent{Kind: IntentMarkReady})
	if err != nil {
		t.Fatalf("Dispatch u2: %v", err)
	}
	if out.Phase != game.PhaseDraw {
		t.Fatalf("both players ready must enter draw, got %s", out.Phase)
	}
	for _, p := range out.Players {
		if len(p.Hand) != game.HandSize {
			t.Fatalf("%s must hold a full hand, got %d", p.UserID, len(p.Hand))
		}
	}
}

func TestHasPlayerAndSnapshot(t *testing.T) {
	reg := newTestRegistry()
	snap, err := reg.CreateRoom("t", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if !reg.HasPlayer(snap.RoomID, "u1") {
		t.Fatalf("u1 sits in the room")
	}
	if reg.HasPlayer(snap.RoomID, "intruder") {
		t.Fatalf("unknown identities must be rejected")
	}
	if _, err := reg.GetSnapshot("no-such-room"); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	got, err := reg.GetSnapshot(snap.RoomID)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got.RoomID != snap.RoomID || len(got.Players) != 2 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestSubscribe_ReceivesCommittedFrames(t *testing.T) {
	reg := newTestRegistry()
	snap, err := reg.CreateRoom("t", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	frames, cancel, err := reg.Subscribe(snap.RoomID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	if _, err := reg.Dispatch(snap.RoomID, "u1", Intent{Kind: IntentMarkReady}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	select {
	case frame := <-frames:
		if len(frame) == 0 {
			t.Fatalf("empty frame")
		}
	case <-time.After(time.Second):
		t.Fatalf("no frame after an applied intent")
	}
}

// driveToChoice walks a room to the point where u1's Gale Ward play has
// opened the timed reorient prompt. The starter deck is all ST09 so the
// shuffled hand is known without fixing the seed.
func driveToChoice(t *testing.T, reg *Registry) (string, Snapshot) {
	t.Helper()
	deck := []string{"ST09", "ST09", "ST09"}
	seats := []engine.Seat{
		{UserID: "u1", Nickname: "U1", Character: "aegis", StarterDeck: deck},
		{UserID: "u2", Nickname: "U2", Character: "striker", StarterDeck: deck},
	}
	snap, err := reg.CreateRoom("timer-ticket", seats)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	roomID := snap.RoomID

	for i := 0; i < 2; i++ {
		for _, u := range []string{"u1", "u2"} {
			if _, err := reg.Dispatch(roomID, u, Intent{Kind: IntentMarkReady}); err != nil {
				t.Fatalf("Dispatch mark-ready %s: %v", u, err)
			}
		}
	}
	if _, err := reg.Dispatch(roomID, "u1", Intent{Kind: IntentClaimSlot, Slot: 1, Entry: &TilePoint{X: 0, Y: -2}}); err != nil {
		t.Fatalf("Dispatch claim u1: %v", err)
	}
	if _, err := reg.Dispatch(roomID, "u2", Intent{Kind: IntentClaimSlot, Slot: 2, Entry: &TilePoint{X: 2, Y: 2}}); err != nil {
		t.Fatalf("Dispatch claim u2: %v", err)
	}

	out, err := reg.Dispatch(roomID, "u1", Intent{Kind: IntentPlayCard, Card: "ST09"})
	if err != nil {
		t.Fatalf("Dispatch play-card: %v", err)
	}
	if out.Interrupt == nil || out.Interrupt.Kind != "choice" {
		t.Fatalf("expected an open choice, got %+v", out.Interrupt)
	}
	return roomID, out
}

func TestChoiceTimer_TimeoutAppliesTheDefault(t *testing.T) {
	reg := NewRegistry(testCatalog(), nil, 60*time.Millisecond, 30)
	roomID, out := driveToChoice(t, reg)

	if out.Interrupt.Deadline.IsZero() {
		t.Fatalf("an armed choice must carry its deadline")
	}
	frames, cancel, err := reg.Subscribe(roomID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	deadline := time.After(2 * time.Second)
	for {
		snap, err := reg.GetSnapshot(roomID)
		if err != nil {
			t.Fatalf("GetSnapshot: %v", err)
		}
		if snap.Interrupt == nil {
			if snap.Boss.Facing != board.FacingSouth {
				t.Fatalf("the declining default must leave the Clad alone, facing=%s", snap.Boss.Facing)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("the choice never timed out")
		case <-time.After(20 * time.Millisecond):
		}
	}

	// the timeout resolution is broadcast like any committed intent
	select {
	case frame := <-frames:
		if len(frame) == 0 {
			t.Fatalf("empty frame")
		}
	case <-time.After(time.Second):
		t.Fatalf("no frame for the timeout resolution")
	}
}

func TestChoiceTimer_AnswerWinsTheRace(t *testing.T) {
	reg := NewRegistry(testCatalog(), nil, 100*time.Millisecond, 30)
	roomID, out := driveToChoice(t, reg)

	ans, err := reg.Dispatch(roomID, "u1", Intent{
		Kind:     IntentAnswerChoice,
		ChoiceID: out.Interrupt.ChoiceID,
		Value:    true,
	})
	if err != nil {
		t.Fatalf("Dispatch answer-choice: %v", err)
	}
	if ans.Interrupt != nil {
		t.Fatalf("the answered choice must clear")
	}
	if ans.Boss.Facing != board.FacingNorth {
		t.Fatalf("accepting must reorient the Clad, got %s", ans.Boss.Facing)
	}

	// the cancelled timer must not apply the default after the fact
	time.Sleep(250 * time.Millisecond)
	snap, err := reg.GetSnapshot(roomID)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if snap.Boss.Facing != board.FacingNorth || snap.Interrupt != nil {
		t.Fatalf("state must hold after the stale deadline: facing=%s interrupt=%+v",
			snap.Boss.Facing, snap.Interrupt)
	}
	for i := range snap.Players {
		if snap.Players[i].UserID == "u1" && snap.Players[i].CP != 0 {
			t.Fatalf("the reorient must be paid exactly once, CP=%d", snap.Players[i].CP)
		}
	}
}

func TestDestroy_ClosesWatchers(t *testing.T) {
	reg := newTestRegistry()
	snap, err := reg.CreateRoom("t", testSeats())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	frames, cancel, err := reg.Subscribe(snap.RoomID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	reg.Destroy(snap.RoomID)
	select {
	case _, open := <-frames:
		if open {
			t.Fatalf("destroy must close the watcher channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("watcher channel not closed")
	}
	if _, err := reg.GetSnapshot(snap.RoomID); err != ErrRoomNotFound {
		t.Fatalf("a destroyed room is gone, got %v", err)
	}
}
