package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// applyHit resolves incoming damage against one player. Absorption order:
// one-time guard is consumed fully first, then persistent guard decreases by
// exactly what it absorbs. Un-absorbed damage increments injury, converts
// shards into a drop on the player's tile (unless unyielding), and knocks
// the player off the board.
func (rc *roomContext) applyHit(p *game.PlayerState, damage int) {
	if damage <= 0 {
		return
	}
	remaining := damage
	if p.OneTimeGuard > 0 {
		absorbed := minInt(p.OneTimeGuard, remaining)
		remaining -= absorbed
		p.OneTimeGuard = 0
		rc.add(p.Nickname + "'s guard absorbs " + itoa(absorbed))
	}
	if remaining > 0 && p.PersistentGuard > 0 {
		absorbed := minInt(p.PersistentGuard, remaining)
		p.PersistentGuard -= absorbed
		remaining -= absorbed
		rc.add(p.Nickname + "'s bulwark absorbs " + itoa(absorbed))
	}
	if remaining <= 0 {
		return
	}

	p.Injury += remaining
	rc.add(p.Nickname + " suffers " + itoa(remaining) + " injury")

	if p.Shards > 0 && !p.Unyielding && p.Pos != nil {
		dropped := minInt(p.Shards, remaining)
		p.Shards -= dropped
		rc.r.Shards.Add(*p.Pos, dropped)
		rc.add(p.Nickname + " drops " + itoa(dropped) + " shards")
	}
	if p.Pos != nil {
		p.Pos = nil
		rc.add(p.Nickname + " is knocked off the board")
	}
}
