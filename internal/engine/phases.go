package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
	"github.com/junseokho/HackClad-sub000/internal/logging"
)

// MarkReady records a player's readiness for the current phase and fires the
// pending transition once every player is ready.
func MarkReady(r *game.Room, cat *game.Catalog, userID string) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	p := rc.player(userID)
	if p == nil {
		return ErrPlayerNotInRoom
	}
	switch r.Phase {
	case game.PhaseForecast, game.PhaseDraw:
	default:
		return ErrWrongPhase
	}
	if p.Ready {
		return ErrAlreadyReady
	}
	p.Ready = true
	rc.maybeAdvancePhase()
	return nil
}

// PickEnhancedCard resolves the player's pending pre-draft pick. The chosen
// card is shuffled into their deck.
func PickEnhancedCard(r *game.Room, cat *game.Catalog, userID, code string) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	p := rc.player(userID)
	if p == nil {
		return ErrPlayerNotInRoom
	}
	if !p.PendingEnhancedPick {
		return ErrNoEnhancedPick
	}
	offered := false
	for _, c := range p.EnhancedChoices {
		if c == code {
			offered = true
			break
		}
	}
	if !offered {
		return ErrPickNotOffered
	}
	p.Deck = append(p.Deck, code)
	rc.shuffle(p.Deck)
	p.PendingEnhancedPick = false
	p.EnhancedChoices = nil
	rc.add(p.Nickname + " locked in an enhanced card")
	// The pick may have been the last gate holding back the draft.
	rc.maybeAdvancePhase()
	return nil
}

// ForcePhaseAdvance pushes the room to the next phase unconditionally.
// Debug intent only.
func ForcePhaseAdvance(r *game.Room, cat *game.Catalog) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	logging.Warn("forcing phase advance", logging.Fields{"room_id": r.ID, "phase": string(r.Phase)})
	switch r.Phase {
	case game.PhaseForecast:
		rc.enterDraw()
	case game.PhaseDraw:
		for i := range r.Players {
			r.Players[i].PendingEnhancedPick = false
			r.Players[i].EnhancedChoices = nil
		}
		rc.enterDraft()
	case game.PhaseDraft:
		rc.forceAssignSlots()
		rc.enterAction()
	case game.PhaseAction:
		r.Reaction = nil
		r.Choice = nil
		r.DeferredChoices = nil
		r.Cursor = len(r.Queue)
		rc.endRound()
	}
	return nil
}

// maybeAdvancePhase fires the gated forecast->draw and draw->draft
// transitions. Readiness flags reset on every transition.
func (rc *roomContext) maybeAdvancePhase() {
	r := rc.r
	for _, p := range r.Players {
		if !p.Ready {
			return
		}
	}
	switch r.Phase {
	case game.PhaseForecast:
		rc.enterDraw()
	case game.PhaseDraw:
		for _, p := range r.Players {
			if p.PendingEnhancedPick {
				return
			}
		}
		rc.enterDraft()
	}
}

func (rc *roomContext) resetReadiness() {
	for i := range rc.r.Players {
		rc.r.Players[i].Ready = false
	}
}

// enterForecast starts a round: transient round flags clear and the boss
// reveals its next three cards, escalating voltage when its deck runs dry.
func (rc *roomContext) enterForecast() {
	r := rc.r
	r.Phase = game.PhaseForecast
	rc.resetReadiness()
	for i := range r.Players {
		p := &r.Players[i]
		p.Slot = 0
		p.CrackUsedRound = false
		p.ReformBonusRound = false
		p.OneTimeGuard = 0
		p.Unyielding = false
	}
	r.Boss.MovementLocked = false
	r.Queue = nil
	r.Cursor = 0

	r.Boss.Foresight = r.Boss.Foresight[:0]
	for len(r.Boss.Foresight) < game.ForesightCount {
		if len(r.Boss.Deck) == 0 {
			rc.refillBossDeck()
			if len(r.Boss.Deck) == 0 {
				break
			}
		}
		card := r.Boss.Deck[0]
		r.Boss.Deck = r.Boss.Deck[1:]
		r.Boss.Foresight = append(r.Boss.Foresight, card)
	}
	rc.add("The Clad reveals its foresight")
}

// refillBossDeck reshuffles the discard into the deck, first advancing the
// voltage tier and mixing in the next tier's cards when one exists.
func (rc *roomContext) refillBossDeck() {
	b := &rc.r.Boss
	if b.Voltage < game.MaxVoltage {
		next := b.Voltage + 1
		if cards, ok := rc.cat.BossTiers[next]; ok && len(cards) > 0 {
			b.Voltage = next
			b.Discard = append(b.Discard, cards...)
			rc.add("The Clad surges to voltage " + itoa(next))
		}
	}
	b.Deck = append(b.Deck, b.Discard...)
	b.Discard = b.Discard[:0]
	rc.shuffle(b.Deck)
}

// enterDraw refills every hand to the hand size, reshuffling empty decks
// from the discard with a once-per-round reform bonus.
func (rc *roomContext) enterDraw() {
	r := rc.r
	r.Phase = game.PhaseDraw
	rc.resetReadiness()
	for i := range r.Players {
		p := &r.Players[i]
		for len(p.Hand) < game.HandSize {
			if !rc.drawOne(p) {
				break
			}
		}
	}
	rc.add("Players draw up to " + itoa(game.HandSize))
}

// drawOne moves one card from deck to hand, reshuffling the discard into an
// empty deck first. Returns false when no card could be drawn.
func (rc *roomContext) drawOne(p *game.PlayerState) bool {
	if len(p.Deck) == 0 {
		if len(p.Discard) == 0 {
			return false
		}
		p.Deck = append(p.Deck, p.Discard...)
		p.Discard = p.Discard[:0]
		rc.shuffle(p.Deck)
		if !p.ReformBonusRound {
			p.MP++
			p.ReformBonusRound = true
			rc.add(p.Nickname + " reforms their deck (+1 MP)")
		}
	}
	p.Hand = append(p.Hand, p.Deck[0])
	p.Deck = p.Deck[1:]
	return true
}

func (rc *roomContext) enterDraft() {
	rc.r.Phase = game.PhaseDraft
	rc.resetReadiness()
	rc.add("Draft begins: claim turn slots in standby order")
}

// ClaimSlot assigns the player a turn slot for the round. Claims must come
// in strict ascending standby order; the slot bonus applies immediately.
// The entry tile places a player who is off the board; moveTarget is read
// only by the slot 4 bonus step.
func ClaimSlot(r *game.Room, cat *game.Catalog, userID string, slot int, entry, moveTarget *board.Position, returnCard string) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	if r.Phase != game.PhaseDraft {
		return ErrWrongPhase
	}
	p := rc.player(userID)
	if p == nil {
		return ErrPlayerNotInRoom
	}
	if p.Slot != 0 {
		return ErrSlotAlreadyOwned
	}
	if slot < 1 || slot > game.SlotCount {
		return ErrSlotOutOfRange
	}
	if r.PlayerBySlot(slot) != nil {
		return ErrSlotTaken
	}
	for i := range r.Players {
		if r.Players[i].StandbyOrder < p.StandbyOrder && r.Players[i].Slot == 0 {
			return ErrNotYourClaimTurn
		}
	}
	p.Slot = slot
	if entry != nil && p.Pos == nil {
		pos := board.Wrap(*entry)
		p.Pos = &pos
		rc.collectShards(p, pos)
		rc.add(p.Nickname + " enters the board")
	}
	switch slot {
	case 1:
		rc.drawOne(p)
	case 2:
		p.MP++
	case 3:
		rc.drawOne(p)
		if returnCard != "" && p.RemoveFromHand(returnCard) {
			p.Deck = append([]string{returnCard}, p.Deck...)
		}
	case 4:
		// optional 0-1 step move toward the supplied tile
		if moveTarget != nil && p.Pos != nil {
			dst := board.Wrap(*moveTarget)
			if board.Distance(*p.Pos, dst) <= 1 {
				p.Pos = &dst
				rc.collectShards(p, dst)
			}
		}
	}
	rc.add(p.Nickname + " claims slot " + itoa(slot))

	for i := range r.Players {
		if r.Players[i].Slot == 0 {
			return nil
		}
	}
	rc.enterAction()
	return nil
}

// forceAssignSlots gives every unslotted player the lowest free slot.
// Debug path only.
func (rc *roomContext) forceAssignSlots() {
	for i := range rc.r.Players {
		p := &rc.r.Players[i]
		if p.Slot != 0 {
			continue
		}
		for s := 1; s <= game.SlotCount; s++ {
			if rc.r.PlayerBySlot(s) == nil {
				p.Slot = s
				break
			}
		}
	}
}

// enterAction builds the interleaved queue and starts resolution.
func (rc *roomContext) enterAction() {
	rc.r.Phase = game.PhaseAction
	rc.resetReadiness()
	rc.buildQueue()
	rc.add("Action phase begins")
	rc.advanceQueue()
}

// endRound wraps up the action phase: round 9 ends the match, otherwise
// transient flags clear and the next forecast begins.
func (rc *roomContext) endRound() {
	r := rc.r
	if r.Round >= game.MaxRounds {
		rc.enterScoring()
		return
	}
	r.Round++
	rc.add("Round " + itoa(r.Round) + " begins")
	rc.enterForecast()
}
