package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// Card flags primed by one play and consumed by a later one.
const flagWoundUp = "wound_up"

// cardBonus is the situational rules text of a single card code.
// attackMod is added to the card's printed attack before targeting;
// after runs once targeting (or the utility effect) has resolved.
type cardBonus struct {
	attackMod func(rc *roomContext, p *game.PlayerState, def *game.CardDef) int
	after     func(rc *roomContext, p *game.PlayerState, def *game.CardDef)
}

// cardBonuses maps card code to its printed special rule. Keeping this an
// explicit table keeps the rules auditable card by card.
var cardBonuses = map[string]cardBonus{
	// Cleaver Arc: +2 ATK when Winding Stance was set up earlier this turn.
	"ST01": {
		attackMod: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) int {
			if p.CardFlags[flagWoundUp] {
				delete(p.CardFlags, flagWoundUp)
				rc.add(p.Nickname + " unwinds their stance (+2 ATK)")
				return 2
			}
			return 0
		},
	},
	// Lance Thrust: +1 ATK when striking the Clad from behind.
	"ST02": {
		attackMod: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) int {
			if p.Facing == rc.r.Boss.Facing {
				return 1
			}
			return 0
		},
	},
	// Overdrive Slash: +2 ATK when the play drains the last MP.
	"ST05": {
		attackMod: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) int {
			if p.MP == 0 {
				return 2
			}
			return 0
		},
	},
	// Repel Shot: the Clad is forced one tile along the shot's line.
	"ST07": {
		after: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) {
			if p.Pos == nil {
				return
			}
			for _, t := range board.Resolve(*p.Pos, p.Facing, def.Range) {
				if t == rc.r.Boss.Pos {
					step := board.StepOffset(p.Facing)
					rc.r.Boss.Pos = board.Translate(rc.r.Boss.Pos, step.DX, step.DY)
					rc.add("The Clad is repelled")
					return
				}
			}
		},
	},
	// Scout Step: draw after moving.
	"ST08": {
		after: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) {
			rc.drawOne(p)
		},
	},
	// Gale Ward: may spend 1 CP to reorient the Clad.
	"ST09": {
		after: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) {
			rc.openChoice(p.UserID, game.ChoiceReorientClad, def.Code, false)
		},
	},
	// Winding Stance: primes Cleaver Arc.
	"ST10": {
		after: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) {
			p.CardFlags[flagWoundUp] = true
		},
	},
	// Chain Bolt: +1 ATK once blood has been drawn this turn.
	"EN02": {
		attackMod: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) int {
			if p.DamageDealtTurn > 0 {
				return 1
			}
			return 0
		},
	},
	// Echo: the most recent discard returns to hand and may be replayed.
	"EN06": {
		after: func(rc *roomContext, p *game.PlayerState, def *game.CardDef) {
			if len(p.Discard) == 0 {
				return
			}
			code := p.Discard[len(p.Discard)-1]
			p.Discard = p.Discard[:len(p.Discard)-1]
			p.Hand = append(p.Hand, code)
			rc.add(p.Nickname + " echoes " + rc.cat.Card(code).Name + " back to hand")
			rc.openChoice(p.UserID, game.ChoiceReplayCard, code, false)
		},
	},
}
