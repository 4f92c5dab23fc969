package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// resetLegionHP refreshes every legion to the current voltage tier. Runs at
// the start of every boss or legion resolution step.
func (rc *roomContext) resetLegionHP() {
	for i := range rc.r.Legions {
		rc.r.Legions[i].HP = rc.r.Boss.Voltage
	}
}

// runLegionVolley resolves the trailing legion step: every head legion
// adjacent to a player attacks, all adjacent players form one combined
// target set behind a single reaction window, and the volley damage equals
// the current voltage. Returns true when a window opened.
func (rc *roomContext) runLegionVolley() bool {
	rc.resetLegionHP()

	var tiles []board.Position
	for i := range rc.r.Legions {
		lg := &rc.r.Legions[i]
		if lg.Kind != game.LegionHead {
			continue
		}
		for _, p := range rc.r.Players {
			if p.Pos != nil && board.Adjacent(lg.Pos, *p.Pos) {
				tiles = append(tiles, lg.Pos)
				break
			}
		}
	}
	if len(tiles) == 0 {
		return false
	}

	rc.add("The legions close in")
	attack := &game.PendingAttack{
		Source: game.AttackSourceLegion,
		Tiles:  tiles,
		Damage: rc.r.Boss.Voltage,
	}
	return rc.openReaction(attack)
}
