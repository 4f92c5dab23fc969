package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

const trapDamage = 2

// runBossCard executes a scripted card's action list sequentially starting
// at startIdx. Returns true when execution halted on an attack that opened
// a reaction window; the window's resume cursor points past the attack so
// a later closeReaction continues exactly where the script left off.
func (rc *roomContext) runBossCard(code string, startIdx int) bool {
	def, ok := rc.cat.BossCard(code)
	if !ok {
		rc.add("The Clad fumbles an unknown card")
		return false
	}
	if startIdx == 0 {
		// a fresh boss step: spend the foresight card and reset legions
		rc.r.Boss.Discard = append(rc.r.Boss.Discard, code)
		rc.resetLegionHP()
		rc.add("The Clad plays " + def.Name)
	}
	b := &rc.r.Boss
	for i := startIdx; i < len(def.Actions); i++ {
		act := def.Actions[i]
		switch act.Kind {
		case game.BossActionMove:
			if b.MovementLocked {
				rc.add("The Clad strains against its bindings")
				continue
			}
			rc.bossStepForward(act.Steps)
		case game.BossActionTurn:
			if act.Right {
				b.Facing = b.Facing.RotateRight()
			} else {
				b.Facing = b.Facing.RotateLeft()
			}
		case game.BossActionSummon:
			rc.summonLegions(def.SummonKind, act.Offsets)
		case game.BossActionMarkShard:
			amount := act.Amount
			if amount == 0 {
				amount = 1
			}
			for _, t := range board.Resolve(b.Pos, b.Facing, act.Offsets) {
				rc.r.Shards.Add(t, amount)
			}
			rc.add("Shards crystallize on the field")
		case game.BossActionSpecial:
			b.Pos = board.Position{X: 0, Y: 0}
			rc.add("The Clad warps back to the origin")
			rc.summonLegions(def.SummonKind, act.Offsets)
		case game.BossActionAttack:
			damage := act.Damage
			if damage == 0 {
				damage = b.Voltage
			}
			attack := &game.PendingAttack{
				Source:      game.AttackSourceBoss,
				CardCode:    code,
				Origin:      b.Pos,
				Facing:      b.Facing,
				Tiles:       board.Resolve(b.Pos, b.Facing, act.Offsets),
				Damage:      damage,
				ResumeIndex: i + 1,
			}
			rc.add("The Clad attacks")
			if rc.openReaction(attack) {
				return true
			}
		}
	}
	return false
}

// bossStepForward moves the boss one tile at a time, detonating any player
// snare on an entered tile.
func (rc *roomContext) bossStepForward(steps int) {
	b := &rc.r.Boss
	step := board.StepOffset(b.Facing)
	for i := 0; i < maxInt(steps, 1); i++ {
		b.Pos = board.Translate(b.Pos, step.DX, step.DY)
		rc.detonateTrapsAt(b.Pos)
	}
	rc.add("The Clad advances")
}

func (rc *roomContext) detonateTrapsAt(tile board.Position) {
	for i := range rc.r.Players {
		p := &rc.r.Players[i]
		kept := p.TrapTokens[:0]
		for _, t := range p.TrapTokens {
			if t == tile {
				applied := minInt(rc.r.Boss.HP, trapDamage)
				rc.r.Boss.HP -= applied
				p.DamageDealtTurn += applied
				rc.add(p.Nickname + "'s snare detonates for " + itoa(applied))
				continue
			}
			kept = append(kept, t)
		}
		p.TrapTokens = kept
	}
}

// summonLegions places one legion per rotated offset. Occupied tiles are
// skipped; the legion kind comes from the card, not the action.
func (rc *roomContext) summonLegions(kind game.LegionKind, offsets []board.Offset) {
	b := &rc.r.Boss
	for _, t := range board.Resolve(b.Pos, b.Facing, offsets) {
		if rc.r.LegionAt(t) != nil || t == b.Pos {
			continue
		}
		rc.r.Legions = append(rc.r.Legions, game.Legion{
			Pos:    t,
			Kind:   kind,
			Facing: b.Facing,
			HP:     b.Voltage,
		})
	}
	if len(offsets) > 0 {
		rc.add("Legions are summoned")
	}
}
