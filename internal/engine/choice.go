package engine

import (
	"github.com/google/uuid"

	"github.com/junseokho/HackClad-sub000/internal/game"
)

// openChoice issues a timed yes/no prompt to one player. The service layer
// owns the timer; resolution (answer or timeout) is a single idempotent
// transition keyed by the choice ID. A reaction window and a choice are
// mutually exclusive: a prompt requested while another interrupt is open is
// deferred and surfaces once resolution resumes.
func (rc *roomContext) openChoice(userID string, kind game.ChoiceKind, cardCode string, def bool) {
	if rc.r.Reaction != nil || rc.r.Choice != nil {
		rc.r.DeferredChoices = append(rc.r.DeferredChoices, game.PendingChoice{
			UserID:   userID,
			Kind:     kind,
			CardCode: cardCode,
			Default:  def,
		})
		rc.add("A choice for " + userID + " waits on the open interrupt")
		return
	}
	rc.r.Choice = &game.PendingChoice{
		ID:       uuid.NewString(),
		UserID:   userID,
		Kind:     kind,
		CardCode: cardCode,
		Default:  def,
	}
	rc.add("Awaiting a choice from " + userID)
}

// openDeferredChoice surfaces the oldest deferred prompt, if any. The ID is
// minted here so the service arms a fresh timer for it. Returns true when a
// choice opened (the caller must halt).
func (rc *roomContext) openDeferredChoice() bool {
	if len(rc.r.DeferredChoices) == 0 || rc.r.Reaction != nil || rc.r.Choice != nil {
		return false
	}
	next := rc.r.DeferredChoices[0]
	rc.r.DeferredChoices = rc.r.DeferredChoices[1:]
	if rc.player(next.UserID) == nil {
		return rc.openDeferredChoice()
	}
	next.ID = uuid.NewString()
	rc.r.Choice = &next
	rc.add("Awaiting a choice from " + next.UserID)
	return true
}

// AnswerChoice resolves the pending choice with the player's explicit
// answer. Answers for an already-resolved (or different) choice are
// rejected, never applied twice.
func AnswerChoice(r *game.Room, cat *game.Catalog, userID, choiceID string, value bool) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	c := r.Choice
	if c == nil || (choiceID != "" && c.ID != choiceID) {
		return ErrNoPendingChoice
	}
	if c.UserID != userID {
		return ErrChoiceNotYours
	}
	rc.resolveChoice(value)
	return nil
}

// ResolveChoiceTimeout applies the recorded default when the timer fires.
// A stale timer (the choice already resolved) is a no-op.
func ResolveChoiceTimeout(r *game.Room, cat *game.Catalog, choiceID string) {
	rc := newRoomContext(r, cat)
	c := r.Choice
	if c == nil || c.ID != choiceID {
		return
	}
	rc.add("Choice timed out; applying default")
	rc.resolveChoice(c.Default)
}

// resolveChoice clears the prompt and applies the chosen branch, then lets
// whatever was suspended behind the choice continue.
func (rc *roomContext) resolveChoice(value bool) {
	c := rc.r.Choice
	rc.r.Choice = nil
	if !value {
		rc.advanceQueue()
		return
	}
	p := rc.player(c.UserID)
	if p == nil {
		rc.advanceQueue()
		return
	}
	switch c.Kind {
	case game.ChoiceReorientClad:
		if p.CP >= 1 {
			p.CP--
			rc.r.Boss.Facing = rc.r.Boss.Facing.Opposite()
			rc.add("The Clad is reoriented")
		}
	case game.ChoiceReplayCard:
		// replaying the returned card re-invokes the interpreter at no cost
		if err := rc.playCard(p, c.CardCode, nil, true); err != nil {
			rc.add("Replay fizzles: " + err.Error())
		}
	}
	rc.advanceQueue()
}
