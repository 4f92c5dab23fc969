package engine

import (
	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

// PlayCard plays a card from the acting player's hand during their own turn.
// Reaction-window plays go through React instead.
func PlayCard(r *game.Room, cat *game.Catalog, userID, code string, facing *board.Facing) error {
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
	return rc.playCard(p, code, facing, false)
}

// playCard validates and applies one card play. With free set the MP cost
// is waived (choice-driven replays).
func (rc *roomContext) playCard(p *game.PlayerState, code string, facing *board.Facing, free bool) error {
	if !p.HasCardInHand(code) {
		return ErrCardNotInHand
	}
	def := rc.cat.Card(code)
	if !free && p.MP < def.Cost {
		return ErrNotEnoughMP
	}
	if def.IsAttack() && p.Pos == nil {
		return ErrNotOnBoard
	}
	if facing != nil && !facing.Valid() {
		return ErrInvalidTarget
	}

	// validation done; mutate
	p.RemoveFromHand(code)
	if !free {
		p.MP -= def.Cost
	}
	if facing != nil {
		p.Facing = *facing
	}
	p.MP += def.GrantMP
	p.CP += def.GrantCP

	rc.add(p.Nickname + " plays " + def.Name)
	bonus, hasBonus := cardBonuses[def.Code]

	if def.IsAttack() {
		mod := 0
		if hasBonus && bonus.attackMod != nil {
			mod = bonus.attackMod(rc, p, &def)
		}
		rc.resolveAttack(p, &def, mod)
	} else {
		// support and reaction utility effects
		if def.Guard > 0 {
			if def.EffectType == game.EffectReaction {
				p.OneTimeGuard += def.Guard
			} else {
				p.PersistentGuard += def.Guard
			}
		}
		if def.Move > 0 && p.Pos != nil {
			rc.movePlayer(p, def.Move)
		}
	}

	if hasBonus && bonus.after != nil {
		bonus.after(rc, p, &def)
	}

	// a played card reaches the discard exactly once, however much of its
	// effect was blocked
	p.Discard = append(p.Discard, code)
	return nil
}

// resolveAttack rotates and translates the card's range from the actor,
// repeating the full targeting for each strike.
func (rc *roomContext) resolveAttack(p *game.PlayerState, def *game.CardDef, attackMod int) {
	strikes := maxInt(maxInt(def.Multistrike, p.MultistrikeBonus), 1)
	damage := def.Attack + attackMod
	if damage < 0 {
		damage = 0
	}
	for s := 0; s < strikes; s++ {
		if p.Pos == nil {
			break
		}
		tiles := board.Resolve(*p.Pos, p.Facing, def.Range)
		for _, t := range tiles {
			rc.collectShards(p, t)
			if lg := rc.r.LegionAt(t); lg != nil {
				rc.damageLegion(p, lg, damage)
			}
			if t == rc.r.Boss.Pos {
				rc.damageBoss(p, damage)
			}
		}
	}
}

// damageLegion applies damage with an HP floor of zero; a defeat rewards
// the attacker with voltage shards, one extra for a head.
func (rc *roomContext) damageLegion(p *game.PlayerState, lg *game.Legion, damage int) {
	if damage <= 0 {
		return
	}
	applied := minInt(lg.HP, damage)
	lg.HP -= applied
	p.DamageDealtTurn += applied
	if lg.HP > 0 {
		return
	}
	reward := rc.r.Boss.Voltage
	if lg.Kind == game.LegionHead {
		reward++
	}
	p.Shards += reward
	rc.add(p.Nickname + " destroys a " + string(lg.Kind) + " legion (+" + itoa(reward) + " shards)")
	rc.r.RemoveLegionAt(lg.Pos)
}

func (rc *roomContext) damageBoss(p *game.PlayerState, damage int) {
	if damage <= 0 {
		return
	}
	applied := minInt(rc.r.Boss.HP, damage)
	rc.r.Boss.HP -= applied
	p.DamageDealtTurn += applied
	rc.add(p.Nickname + " hits the Clad for " + itoa(applied))
}

// movePlayer advances the player one tile at a time along their facing,
// collecting shards from every tile passed through.
func (rc *roomContext) movePlayer(p *game.PlayerState, steps int) {
	if p.Pos == nil {
		return
	}
	step := board.StepOffset(p.Facing)
	for i := 0; i < steps; i++ {
		next := board.Translate(*p.Pos, step.DX, step.DY)
		p.Pos = &next
		rc.collectShards(p, next)
	}
	p.MovedThisTurn = true
}

// collectShards credits any shards on the tile to the player.
func (rc *roomContext) collectShards(p *game.PlayerState, t board.Position) {
	if n := rc.r.Shards.Take(t); n > 0 {
		p.Shards += n
		rc.add(p.Nickname + " collects " + itoa(n) + " shards")
	}
}

// Basic action kinds, each paid for by discarding one card.
const (
	BasicMove  = "move"
	BasicBrace = "brace"
	BasicFocus = "focus"
)

// BasicAction performs a discard-paid basic action during the player's turn.
func BasicAction(r *game.Room, cat *game.Catalog, userID, kind string, facing *board.Facing, discard string) error {
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
	return rc.basicAction(p, kind, facing, discard)
}

func (rc *roomContext) basicAction(p *game.PlayerState, kind string, facing *board.Facing, discard string) error {
	switch kind {
	case BasicMove, BasicBrace, BasicFocus:
	default:
		return ErrUnknownBasic
	}
	if !p.HasCardInHand(discard) {
		return ErrCardNotInHand
	}
	if kind == BasicMove && p.Pos == nil {
		return ErrNotOnBoard
	}
	if facing != nil && !facing.Valid() {
		return ErrInvalidTarget
	}

	p.RemoveFromHand(discard)
	p.Discard = append(p.Discard, discard)
	if facing != nil {
		p.Facing = *facing
	}
	switch kind {
	case BasicMove:
		rc.movePlayer(p, 1)
		rc.add(p.Nickname + " moves")
	case BasicBrace:
		p.OneTimeGuard++
		rc.add(p.Nickname + " braces")
	case BasicFocus:
		p.MP++
		rc.add(p.Nickname + " focuses (+1 MP)")
	}
	return nil
}

// CP action identifiers.
const (
	CPDash     = "dash"
	CPBulwark  = "bulwark"
	CPResupply = "resupply"
)

// CPAction spends command points on a listed action during the player's turn.
func CPAction(r *game.Room, cat *game.Catalog, userID, id string, facing *board.Facing) error {
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
	return rc.cpAction(p, id, facing)
}

func (rc *roomContext) cpAction(p *game.PlayerState, id string, facing *board.Facing) error {
	cost := 0
	switch id {
	case CPDash, CPBulwark:
		cost = 1
	case CPResupply:
		cost = 2
	default:
		return ErrUnknownCPAction
	}
	if p.CP < cost {
		return ErrNotEnoughCP
	}
	if id == CPDash && p.Pos == nil {
		return ErrNotOnBoard
	}
	if facing != nil && !facing.Valid() {
		return ErrInvalidTarget
	}

	p.CP -= cost
	if facing != nil {
		p.Facing = *facing
	}
	switch id {
	case CPDash:
		rc.movePlayer(p, 1)
		rc.add(p.Nickname + " dashes")
	case CPBulwark:
		p.PersistentGuard++
		rc.add(p.Nickname + " raises a bulwark")
	case CPResupply:
		rc.drawOne(p)
		rc.add(p.Nickname + " resupplies")
	}
	return nil
}

// CrackSkill invokes the player's once-per-round character skill.
func CrackSkill(r *game.Room, cat *game.Catalog, userID string, facing *board.Facing, moveTarget *board.Position) error {
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
	return rc.crackSkill(p, facing, moveTarget)
}

func (rc *roomContext) crackSkill(p *game.PlayerState, facing *board.Facing, moveTarget *board.Position) error {
	char, ok := rc.cat.Character(p.Character)
	if !ok {
		return ErrInvalidTarget
	}
	if p.CrackUsedRound {
		return ErrCrackUsed
	}
	if p.CP < char.CrackCost {
		return ErrNotEnoughCP
	}
	if facing != nil && !facing.Valid() {
		return ErrInvalidTarget
	}
	switch char.CrackKey {
	case game.CrackKeyAegis, game.CrackKeyStriker:
	case game.CrackKeyTrapper, game.CrackKeyWarden:
		if moveTarget == nil && p.Pos == nil {
			return ErrInvalidTarget
		}
	default:
		return ErrInvalidTarget
	}

	p.CP -= char.CrackCost
	p.CrackUsedRound = true
	if facing != nil {
		p.Facing = *facing
	}
	switch char.CrackKey {
	case game.CrackKeyAegis:
		p.Unyielding = true
		p.OneTimeGuard += 2
		rc.add(p.Nickname + " becomes unyielding")
	case game.CrackKeyStriker:
		p.MultistrikeBonus = 3
		rc.add(p.Nickname + " surges: the next attack strikes thrice")
	case game.CrackKeyTrapper:
		tile := p.Pos
		if moveTarget != nil {
			t := board.Wrap(*moveTarget)
			tile = &t
		}
		p.TrapTokens = append(p.TrapTokens, *tile)
		rc.add(p.Nickname + " arms a snare")
	case game.CrackKeyWarden:
		if moveTarget != nil && p.Pos != nil {
			dst := board.Wrap(*moveTarget)
			if board.Distance(*p.Pos, dst) <= 2 {
				p.Pos = &dst
				rc.collectShards(p, dst)
				rc.add(p.Nickname + " shifts across the field")
			}
		}
	}
	return nil
}
