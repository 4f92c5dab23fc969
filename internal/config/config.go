package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/junseokho/HackClad-sub000/internal/board"
	"github.com/junseokho/HackClad-sub000/internal/game"
)

type rawBossAction struct {
	Kind    string      `json:"kind"`
	Steps   int         `json:"steps"`
	Right   bool        `json:"right"`
	Offsets []rawOffset `json:"offsets"`
	Damage  int         `json:"damage"`
	Amount  int         `json:"amount"`
}

type rawOffset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

type rawBossCard struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Tier       int             `json:"tier"`
	SummonKind string          `json:"summon_kind"`
	Actions    []rawBossAction `json:"actions"`
	Notes      string          `json:"notes"`
}

type rawCard struct {
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Cost          int         `json:"cost"`
	EffectType    string      `json:"effect_type"`
	Range         []rawOffset `json:"range"`
	Attack        int         `json:"attack"`
	Guard         int         `json:"guard"`
	Move          int         `json:"move"`
	Multistrike   int         `json:"multistrike"`
	GrantMP       int         `json:"grant_mp"`
	GrantCP       int         `json:"grant_cp"`
	VictoryPoints int         `json:"victory_points"`
	Enhanced      bool        `json:"enhanced"`
	Notes         string      `json:"notes"`
}

type rawCharacter struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CrackName string `json:"crack_name"`
	CrackCost int    `json:"crack_cost"`
	CrackKey  string `json:"crack_key"`
	Notes     string `json:"notes"`
}

type rawConfig struct {
	CardList      []rawCard      `json:"card_list"`
	BossCardList  []rawBossCard  `json:"boss_card_list"`
	CharacterList []rawCharacter `json:"character_list"`
	StarterDeck   []string       `json:"starter_deck"`
	EnhancedPool  []string       `json:"enhanced_pool"`
	Boss          *struct {
		HitPoints int `json:"hit_points"`
	} `json:"boss"`
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	ChoiceTimeoutSeconds int `json:"choice_timeout_seconds"`
}

// LoadedConfig is the parsed, validated server configuration. The config
// file is the source of truth for every catalog stat.
type LoadedConfig struct {
	Cards         []game.CardDef
	BossCards     []game.BossCardDef
	Characters    []game.CharacterDef
	StarterDeck   []string
	EnhancedPool  []string
	BossHitPoints int
	ServerAddress string
	ChoiceTimeout time.Duration
}

// Catalog builds the indexed read-only catalog from the loaded lists.
func (c *LoadedConfig) Catalog() *game.Catalog {
	return game.NewCatalog(c.Cards, c.BossCards, c.Characters)
}

func offsetOf(o rawOffset) board.Offset {
	return board.Offset{DX: o.DX, DY: o.DY}
}

// LoadConfig reads the configuration file at path and returns the parsed
// catalog and server settings. It requires `card_list`, `boss_card_list`
// and `character_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty", path)
	}
	if len(rc.BossCardList) == 0 {
		return nil, fmt.Errorf("config file %s: boss_card_list is empty", path)
	}
	if len(rc.CharacterList) == 0 {
		return nil, fmt.Errorf("config file %s: character_list is empty", path)
	}

	out := &LoadedConfig{
		StarterDeck:   rc.StarterDeck,
		EnhancedPool:  rc.EnhancedPool,
		BossHitPoints: 30,
		ServerAddress: ":8080",
		ChoiceTimeout: 5 * time.Second,
	}
	if rc.Boss != nil && rc.Boss.HitPoints > 0 {
		out.BossHitPoints = rc.Boss.HitPoints
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.ChoiceTimeoutSeconds > 0 {
		out.ChoiceTimeout = time.Duration(rc.ChoiceTimeoutSeconds) * time.Second
	}

	codeSet := make(map[string]struct{})
	for _, c := range rc.CardList {
		if strings.TrimSpace(c.Code) == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'code'", path)
		}
		if _, exists := codeSet[c.Code]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card code '%s'", path, c.Code)
		}
		codeSet[c.Code] = struct{}{}
		et := game.EffectType(c.EffectType)
		switch et {
		case game.EffectAttack, game.EffectReaction, game.EffectSupport:
		default:
			return nil, fmt.Errorf("config file %s: card '%s' has unknown effect_type '%s'", path, c.Code, c.EffectType)
		}
		def := game.CardDef{
			Code:          c.Code,
			Name:          c.Name,
			Cost:          c.Cost,
			EffectType:    et,
			Attack:        c.Attack,
			Guard:         c.Guard,
			Move:          c.Move,
			Multistrike:   c.Multistrike,
			GrantMP:       c.GrantMP,
			GrantCP:       c.GrantCP,
			VictoryPoints: c.VictoryPoints,
			Enhanced:      c.Enhanced,
			Notes:         c.Notes,
		}
		for _, o := range c.Range {
			def.Range = append(def.Range, offsetOf(o))
		}
		out.Cards = append(out.Cards, def)
	}

	bossCodeSet := make(map[string]struct{})
	for _, bc := range rc.BossCardList {
		if strings.TrimSpace(bc.Code) == "" {
			return nil, fmt.Errorf("config file %s: boss card entry missing 'code'", path)
		}
		if _, exists := bossCodeSet[bc.Code]; exists {
			return nil, fmt.Errorf("config file %s: duplicate boss card code '%s'", path, bc.Code)
		}
		bossCodeSet[bc.Code] = struct{}{}
		if bc.Tier < 1 || bc.Tier > game.MaxVoltage {
			return nil, fmt.Errorf("config file %s: boss card '%s' tier %d out of range", path, bc.Code, bc.Tier)
		}
		def := game.BossCardDef{
			Code:  bc.Code,
			Name:  bc.Name,
			Tier:  bc.Tier,
			Notes: bc.Notes,
		}
		switch strings.ToLower(bc.SummonKind) {
		case "":
			def.SummonKind = game.LegionTail
		case "head":
			def.SummonKind = game.LegionHead
		case "tail":
			def.SummonKind = game.LegionTail
		default:
			return nil, fmt.Errorf("config file %s: boss card '%s' has unknown summon_kind '%s'", path, bc.Code, bc.SummonKind)
		}
		for i, a := range bc.Actions {
			kind, ok := game.BossActionKindFromString(a.Kind)
			if !ok {
				return nil, fmt.Errorf("config file %s: boss card '%s' action %d has unknown kind '%s'", path, bc.Code, i, a.Kind)
			}
			act := game.BossAction{
				Kind:   kind,
				Steps:  a.Steps,
				Right:  a.Right,
				Damage: a.Damage,
				Amount: a.Amount,
			}
			for _, o := range a.Offsets {
				act.Offsets = append(act.Offsets, offsetOf(o))
			}
			def.Actions = append(def.Actions, act)
		}
		out.BossCards = append(out.BossCards, def)
	}
	// Every tier up to the max that appears must have at least one card so
	// voltage escalation always finds a deck to add.
	tiers := make(map[int]int)
	for _, bc := range out.BossCards {
		tiers[bc.Tier]++
	}
	if tiers[1] == 0 {
		return nil, fmt.Errorf("config file %s: no tier-1 boss cards", path)
	}

	charSet := make(map[string]struct{})
	for _, ch := range rc.CharacterList {
		if strings.TrimSpace(ch.Code) == "" {
			return nil, fmt.Errorf("config file %s: character entry missing 'code'", path)
		}
		if _, exists := charSet[ch.Code]; exists {
			return nil, fmt.Errorf("config file %s: duplicate character code '%s'", path, ch.Code)
		}
		charSet[ch.Code] = struct{}{}
		out.Characters = append(out.Characters, game.CharacterDef{
			Code:      ch.Code,
			Name:      ch.Name,
			CrackName: ch.CrackName,
			CrackCost: ch.CrackCost,
			CrackKey:  ch.CrackKey,
			Notes:     ch.Notes,
		})
	}

	// Starter deck and enhanced pool must reference known cards.
	for _, code := range out.StarterDeck {
		if _, ok := codeSet[code]; !ok {
			return nil, fmt.Errorf("config file %s: starter_deck references unknown card '%s'", path, code)
		}
	}
	for _, code := range out.EnhancedPool {
		if _, ok := codeSet[code]; !ok {
			return nil, fmt.Errorf("config file %s: enhanced_pool references unknown card '%s'", path, code)
		}
	}

	return out, nil
}
