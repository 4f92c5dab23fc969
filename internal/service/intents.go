package service

import (
	"errors"

	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/engine"
	"github.com/junseokho/HackClad-sub000/internal/logging"
)

// Intent kinds accepted by Dispatch.
const (
	IntentMarkReady    = "mark-ready"
	IntentPickEnhanced = "pick-enhanced"
	IntentClaimSlot    = "claim-draft-slot"
	IntentPlayCard     = "play-card"
	IntentBasicAction  = "basic-action"
	IntentCPAction     = "cp-action"
	IntentSkill        = "skill"
	IntentEndTurn      = "end-turn"
	IntentReact        = "react"
	IntentAnswerChoice = "answer-choice"
	IntentDebugAdvance = "debug-advance"
)

var (
	ErrUnknownIntent = errors.New("unknown intent kind")
	ErrBadFacing     = errors.New("invalid facing value")
)

// Intent is one player command against a room. Fields beyond Kind are
// interpreted per kind; unused ones are ignored.
type Intent struct {
	Kind string `json:"kind"`

	// play-card, pick-enhanced, and the basic-action discard payment.
	Card    string `json:"card,omitempty"`
	Discard string `json:"discard,omitempty"`

	// claim-draft-slot. Move is the slot 4 bonus step destination.
	Slot       int        `json:"slot,omitempty"`
	Entry      *TilePoint `json:"entry,omitempty"`
	Move       *TilePoint `json:"move,omitempty"`
	ReturnCard string     `json:"return_card,omitempty"`

	// basic-action ("move", "brace", "focus") and cp-action
	// ("dash", "bulwark", "resupply").
	Action string `json:"action,omitempty"`

	// Facing is one of "N", "E", "S", "W" where an action reorients
	// the actor.
	Facing string `json:"facing,omitempty"`

	// skill target tile (trapper) or move destination (warden).
	Target *TilePoint `json:"target,omitempty"`

	// react: Sub is the reaction sub-kind, the other fields follow the
	// shape of the reacted action.
	Sub string `json:"sub,omitempty"`

	// answer-choice.
	ChoiceID string `json:"choice_id,omitempty"`
	Value    bool   `json:"value,omitempty"`
}

// TilePoint is the wire form of a board coordinate.
type TilePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (t *TilePoint) position() *board.Position {
	if t == nil {
		return nil
	}
	p := board.Wrap(board.Position{X: t.X, Y: t.Y})
	return &p
}

func parseFacing(s string) (*board.Facing, error) {
	if s == "" {
		return nil, nil
	}
	f := board.Facing(s)
	if !f.Valid() {
		return nil, ErrBadFacing
	}
	return &f, nil
}

// Dispatch applies one intent to the room, serialized against all other
// intents and the choice timer. On success the committed snapshot is
// returned and broadcast to watchers.
func (reg *Registry) Dispatch(roomID, userID string, in Intent) (Snapshot, error) {
	h := reg.handle(roomID)
	if h == nil {
		return Snapshot{}, ErrRoomNotFound
	}

	facing, err := parseFacing(in.Facing)
	if err != nil {
		return Snapshot{}, err
	}
	target := in.Target.position()
	entry := in.Entry.position()

	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	switch in.Kind {
	case IntentMarkReady:
		err = engine.MarkReady(room, reg.cat, userID)
	case IntentPickEnhanced:
		err = engine.PickEnhancedCard(room, reg.cat, userID, in.Card)
	case IntentClaimSlot:
		err = engine.ClaimSlot(room, reg.cat, userID, in.Slot, entry, in.Move.position(), in.ReturnCard)
	case IntentPlayCard:
		err = engine.PlayCard(room, reg.cat, userID, in.Card, facing)
	case IntentBasicAction:
		err = engine.BasicAction(room, reg.cat, userID, in.Action, facing, in.Discard)
	case IntentCPAction:
		err = engine.CPAction(room, reg.cat, userID, in.Action, facing)
	case IntentSkill:
		err = engine.CrackSkill(room, reg.cat, userID, facing, target)
	case IntentEndTurn:
		err = engine.EndTurn(room, reg.cat, userID)
	case IntentReact:
		err = engine.React(room, reg.cat, userID, in.Sub, in.Card, facing, in.Discard, target)
	case IntentAnswerChoice:
		err = engine.AnswerChoice(room, reg.cat, userID, in.ChoiceID, in.Value)
	case IntentDebugAdvance:
		err = engine.ForcePhaseAdvance(room, reg.cat)
	default:
		return Snapshot{}, ErrUnknownIntent
	}
	if err != nil {
		// rejected intents leave the room untouched
		return Snapshot{}, err
	}

	logging.Info("intent applied", logging.Fields{
		"room_id": roomID,
		"user_id": userID,
		"kind":    in.Kind,
		"phase":   string(room.Phase),
		"round":   room.Round,
	})
	reg.afterMutation(h)
	return buildSnapshot(room), nil
}
