package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// buildQueue interleaves the drafted player slots with the boss foresight
// and appends the trailing legion volley:
//
//	[slot1, boss1, slot2, boss2, slot3, boss3, slot4, legion]
//
// Unclaimed slots and absent boss cards are simply omitted.
func (rc *roomContext) buildQueue() {
	r := rc.r
	r.Queue = r.Queue[:0]
	r.Cursor = 0
	n := maxInt(game.SlotCount, len(r.Boss.Foresight))
	for i := 1; i <= n; i++ {
		if p := r.PlayerBySlot(i); p != nil {
			r.Queue = append(r.Queue, game.QueueEntry{Kind: game.QueuePlayer, UserID: p.UserID})
		}
		if i <= len(r.Boss.Foresight) {
			r.Queue = append(r.Queue, game.QueueEntry{Kind: game.QueueBoss, BossCard: r.Boss.Foresight[i-1]})
		}
	}
	r.Queue = append(r.Queue, game.QueueEntry{Kind: game.QueueLegion})
}

// advanceQueue resolves queue entries until a player step awaits intents,
// an interrupt opens, or the queue drains (ending the round). Boss and
// legion steps that halt on a reaction keep the cursor in place so the
// suspended attacker resumes later.
func (rc *roomContext) advanceQueue() {
	r := rc.r
	for r.Cursor < len(r.Queue) {
		if r.Reaction != nil || r.Choice != nil {
			return
		}
		if rc.openDeferredChoice() {
			return
		}
		entry := r.Queue[r.Cursor]
		switch entry.Kind {
		case game.QueuePlayer:
			p := r.PlayerByID(entry.UserID)
			if p == nil {
				r.Cursor++
				continue
			}
			if !p.TurnActive {
				p.TurnActive = true
				rc.add(p.Nickname + "'s turn")
			}
			return
		case game.QueueBoss:
			if rc.runBossCard(entry.BossCard, 0) {
				return // halted on a reaction window
			}
			r.Cursor++
		case game.QueueLegion:
			if rc.runLegionVolley() {
				return
			}
			r.Cursor++
		}
	}
	if rc.openDeferredChoice() {
		return
	}
	rc.endRound()
}

// EndTurn closes the acting player's step and resumes queue resolution.
func EndTurn(r *game.Room, cat *game.Catalog, userID string) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	if err := rc.requireNoInterrupt(); err != nil {
		return err
	}
	p := rc.player(userID)
	if p == nil {
		return ErrPlayerNotInRoom
	}
	if !p.TurnActive {
		return ErrNotYourTurn
	}
	rc.finishPlayerStep(p)
	return nil
}

// finishPlayerStep clears turn-scoped flags and advances the cursor.
func (rc *roomContext) finishPlayerStep(p *game.PlayerState) {
	p.TurnActive = false
	p.MovedThisTurn = false
	p.MultistrikeBonus = 0
	p.DamageDealtTurn = 0
	p.CardFlags = make(map[string]bool)
	rc.add(p.Nickname + " ends their turn")
	rc.r.Cursor++
	rc.advanceQueue()
}
