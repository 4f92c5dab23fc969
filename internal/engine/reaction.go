package engine

import (
	"sort"

	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// Reaction sub-kinds accepted by React.
const (
	ReactPlayCard    = "play-card"
	ReactBasicAction = "basic-action"
	ReactCPAction    = "cp-action"
	ReactSkill       = "skill"
	ReactPass        = "pass"
)

// eligibleReactors orders the players who may act inside the window:
// inside the attack's tiles (boss) or adjacent to an attacking head
// (legion), holding at least one card, already assigned a turn slot.
// Order is ascending slot, then identity.
func (rc *roomContext) eligibleReactors(a *game.PendingAttack) []string {
	var out []*game.PlayerState
	for i := range rc.r.Players {
		p := &rc.r.Players[i]
		if p.Pos == nil || len(p.Hand) == 0 || p.Slot == 0 {
			continue
		}
		if rc.inAttackArea(a, *p.Pos) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].UserID < out[j].UserID
	})
	ids := make([]string, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.UserID)
	}
	return ids
}

// inAttackArea reports whether the tile is threatened by the pending
// attack. Legion volleys recompute adjacency against the live legion list,
// so a destroyed or repositioned attacker shrinks the area immediately.
func (rc *roomContext) inAttackArea(a *game.PendingAttack, pos board.Position) bool {
	if a.Source == game.AttackSourceLegion {
		for i := range rc.r.Legions {
			lg := &rc.r.Legions[i]
			if lg.Kind == game.LegionHead && board.Adjacent(lg.Pos, pos) {
				return true
			}
		}
		return false
	}
	for _, t := range a.Tiles {
		if t == pos {
			return true
		}
	}
	return false
}

// openReaction opens the window when at least one player may act; when
// nobody can, the damage lands immediately and resolution continues.
// Returns true when a window opened (the caller must halt).
func (rc *roomContext) openReaction(a *game.PendingAttack) bool {
	eligible := rc.eligibleReactors(a)
	if len(eligible) == 0 {
		rc.applyAttackDamage(a)
		return false
	}
	a.Eligible = eligible
	a.Active = 0
	a.Passed = make(map[string]bool)
	rc.r.Reaction = a
	rc.add("Reaction window opens")
	return true
}

// applyAttackDamage lands the outstanding damage on every player still in
// the attack area.
func (rc *roomContext) applyAttackDamage(a *game.PendingAttack) {
	for i := range rc.r.Players {
		p := &rc.r.Players[i]
		if p.Pos != nil && rc.inAttackArea(a, *p.Pos) {
			rc.applyHit(p, a.Damage)
		}
	}
}

// React handles one intent inside an open reaction window.
func React(r *game.Room, cat *game.Catalog, userID, sub, code string, facing *board.Facing, discard string, target *board.Position) error {
	rc := newRoomContext(r, cat)
	if r.Finished {
		return ErrMatchFinished
	}
	a := r.Reaction
	if a == nil {
		return ErrNoOpenReaction
	}
	p := rc.player(userID)
	if p == nil {
		return ErrPlayerNotInRoom
	}
	if a.ActiveUser() != userID {
		return ErrNotActiveReactor
	}

	switch sub {
	case ReactPass:
		a.Passed[userID] = true
		rc.add(p.Nickname + " passes")
	case ReactPlayCard:
		def := cat.Card(code)
		if def.EffectType != game.EffectReaction {
			return ErrNotReactionCard
		}
		if err := rc.playCard(p, code, facing, false); err != nil {
			return err
		}
	case ReactBasicAction:
		// brace is the only reaction-tagged basic action
		if err := rc.basicAction(p, BasicBrace, facing, discard); err != nil {
			return err
		}
	case ReactCPAction:
		if code != CPDash && code != CPBulwark {
			return ErrNotReactionAction
		}
		if err := rc.cpAction(p, code, facing); err != nil {
			return err
		}
	case ReactSkill:
		char, ok := cat.Character(p.Character)
		if !ok || (char.CrackKey != game.CrackKeyAegis && char.CrackKey != game.CrackKeyWarden) {
			return ErrNotReactionSkill
		}
		if err := rc.crackSkill(p, facing, target); err != nil {
			return err
		}
	default:
		return ErrNotReactionAction
	}

	rc.settleReaction()
	return nil
}

// settleReaction recomputes eligibility after a state change and either
// hands priority to the next player or closes the window.
func (rc *roomContext) settleReaction() {
	a := rc.r.Reaction
	if a == nil {
		return
	}
	// drop anyone who is no longer threatened
	kept := a.Eligible[:0]
	for _, id := range a.Eligible {
		p := rc.player(id)
		if p != nil && p.Pos != nil && rc.inAttackArea(a, *p.Pos) {
			kept = append(kept, id)
		}
	}
	a.Eligible = kept

	for i, id := range a.Eligible {
		if !a.Passed[id] {
			a.Active = i
			return
		}
	}
	rc.closeReaction()
}

// closeReaction applies the outstanding damage and resumes the suspended
// attacker from its saved cursor.
func (rc *roomContext) closeReaction() {
	a := rc.r.Reaction
	rc.r.Reaction = nil
	rc.add("Reaction window closes")
	rc.applyAttackDamage(a)

	switch a.Source {
	case game.AttackSourceBoss:
		if rc.runBossCard(a.CardCode, a.ResumeIndex) {
			return // halted on a later attack step
		}
	case game.AttackSourceLegion:
		// the volley is the whole legion step; nothing left to resume
	}
	rc.r.Cursor++
	rc.advanceQueue()
}
