package engine

import (
	"errors"
	"strconv"

	"github.com/junseokho/HackClad-sub000/internal/game"
)

// Rejected-intent errors. These are answered to the client and never
// leave the room partially mutated; validation precedes every mutation.
var (
	ErrWrongPhase        = errors.New("intent not valid in the current phase")
	ErrNotYourTurn       = errors.New("it is not your turn to act")
	ErrPlayerNotInRoom   = errors.New("player not in room")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrNotEnoughMP       = errors.New("not enough MP")
	ErrNotEnoughCP       = errors.New("not enough CP")
	ErrSlotTaken         = errors.New("turn slot already claimed")
	ErrSlotOutOfRange    = errors.New("turn slot out of range")
	ErrSlotAlreadyOwned  = errors.New("you already claimed a slot this round")
	ErrNotYourClaimTurn  = errors.New("players claim slots in standby order")
	ErrNotOnBoard        = errors.New("you are not on the board")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrNoPendingChoice   = errors.New("no pending choice")
	ErrChoiceNotYours    = errors.New("pending choice belongs to another player")
	ErrNoOpenReaction    = errors.New("no reaction window is open")
	ErrNotActiveReactor  = errors.New("another player holds reaction priority")
	ErrNotReactionCard   = errors.New("card is not reaction-tagged")
	ErrCrackUsed         = errors.New("crack skill already used this round")
	ErrNoEnhancedPick    = errors.New("no enhanced card pick is pending")
	ErrUnknownBasic      = errors.New("unknown basic action")
	ErrUnknownCPAction   = errors.New("unknown CP action")
	ErrInterruptOpen     = errors.New("an interrupt is already open")
	ErrMatchFinished     = errors.New("match is finished")
	ErrAlreadyReady      = errors.New("already marked ready")
	ErrPickNotOffered    = errors.New("card is not in your enhanced pool")
	ErrNotReactionSkill  = errors.New("crack skill cannot be used as a reaction")
	ErrNotReactionAction = errors.New("action cannot be used as a reaction")
)

const maxLogLines = 60

// roomContext carries a single intent's resolution over the room. It is the
// unit of work for every mutation; summaries accumulate into the room log.
type roomContext struct {
	r   *game.Room
	cat *game.Catalog
}

func newRoomContext(r *game.Room, cat *game.Catalog) *roomContext {
	return &roomContext{r: r, cat: cat}
}

// add appends a summary line, keeping only the most recent window.
func (rc *roomContext) add(msg string) {
	rc.r.Log = append(rc.r.Log, msg)
	if len(rc.r.Log) > maxLogLines {
		rc.r.Log = rc.r.Log[len(rc.r.Log)-maxLogLines:]
	}
}

// player resolves a user ID, or nil when absent.
func (rc *roomContext) player(userID string) *game.PlayerState {
	return rc.r.PlayerByID(userID)
}

// requireNoInterrupt rejects intents that must not race an open window.
func (rc *roomContext) requireNoInterrupt() error {
	if rc.r.Reaction != nil || rc.r.Choice != nil {
		return ErrInterruptOpen
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
