package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/junseokho/HackClad-sub000/internal/engine"
	"github.com/junseokho/HackClad-sub000/internal/game"
	"github.com/junseokho/HackClad-sub000/internal/logging"
	"github.com/junseokho/HackClad-sub000/internal/storage"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNoSeats      = errors.New("a room needs between 2 and 4 seats")
)

// roomHandle serializes all access to one room: intents for a room are
// processed one at a time to completion, so no observer ever sees a torn
// state. The choice timer is the only asynchronous element.
type roomHandle struct {
	mu   sync.Mutex
	room *game.Room

	choiceTimer *time.Timer
	armedChoice string

	watchers map[chan []byte]struct{}
}

// Registry owns room lifecycle: create-on-match, destroy-on-empty. It is
// injected into request handlers instead of living as global state.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*roomHandle

	cat           *game.Catalog
	repo          storage.Repository
	choiceTimeout time.Duration
	bossHitPoints int

	createGroup singleflight.Group
}

// NewRegistry builds the room registry. repo may be nil in tests; stats
// updates are then skipped.
func NewRegistry(cat *game.Catalog, repo storage.Repository, choiceTimeout time.Duration, bossHitPoints int) *Registry {
	return &Registry{
		rooms:         make(map[string]*roomHandle),
		cat:           cat,
		repo:          repo,
		choiceTimeout: choiceTimeout,
		bossHitPoints: bossHitPoints,
	}
}

// CreateRoom builds the initial room state for a matched roster. Concurrent
// calls for the same matchmaking ticket are deduplicated and share one room.
func (reg *Registry) CreateRoom(ticket string, seats []engine.Seat) (Snapshot, error) {
	if len(seats) < 2 || len(seats) > 4 {
		return Snapshot{}, ErrNoSeats
	}
	v, err, _ := reg.createGroup.Do(ticket, func() (interface{}, error) {
		room := engine.NewRoom(reg.cat, engine.Setup{
			RoomID:        uuid.NewString(),
			Seed:          time.Now().UnixNano(),
			BossHitPoints: reg.bossHitPoints,
			Seats:         seats,
		})
		h := &roomHandle{room: room, watchers: make(map[chan []byte]struct{})}
		reg.mu.Lock()
		reg.rooms[room.ID] = h
		reg.mu.Unlock()
		logging.Info("room created", logging.Fields{"room_id": room.ID, "players": len(seats)})
		return room.ID, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	roomID := v.(string)
	h := reg.handle(roomID)
	if h == nil {
		return Snapshot{}, ErrRoomNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return buildSnapshot(h.room), nil
}

func (reg *Registry) handle(roomID string) *roomHandle {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[roomID]
}

// GetSnapshot returns the committed state of a room.
func (reg *Registry) GetSnapshot(roomID string) (Snapshot, error) {
	h := reg.handle(roomID)
	if h == nil {
		return Snapshot{}, ErrRoomNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return buildSnapshot(h.room), nil
}

// HasPlayer reports whether the identity participates in the room.
func (reg *Registry) HasPlayer(roomID, userID string) bool {
	h := reg.handle(roomID)
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.room.PlayerByID(userID) != nil
}

// Subscribe registers a snapshot watcher for the room. The returned cancel
// must be called on disconnect; the room is torn down when its last
// watcher leaves after the match finished.
func (reg *Registry) Subscribe(roomID string) (<-chan []byte, func(), error) {
	h := reg.handle(roomID)
	if h == nil {
		return nil, nil, ErrRoomNotFound
	}
	ch := make(chan []byte, 8)
	h.mu.Lock()
	h.watchers[ch] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.watchers, ch)
		empty := len(h.watchers) == 0
		finished := h.room.Finished
		h.mu.Unlock()
		if empty && finished {
			reg.Destroy(roomID)
		}
	}
	return ch, cancel, nil
}

// Destroy removes a room and stops its timer.
func (reg *Registry) Destroy(roomID string) {
	reg.mu.Lock()
	h := reg.rooms[roomID]
	delete(reg.rooms, roomID)
	reg.mu.Unlock()
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.choiceTimer != nil {
		h.choiceTimer.Stop()
	}
	for ch := range h.watchers {
		close(ch)
	}
	h.watchers = make(map[chan []byte]struct{})
	h.mu.Unlock()
	logging.Info("room destroyed", logging.Fields{"room_id": roomID})
}

// afterMutation runs with the handle locked once an intent (or timeout)
// committed: it re-arms the choice timer, counts stats on finish, and
// broadcasts the fresh snapshot to watchers.
func (reg *Registry) afterMutation(h *roomHandle) {
	room := h.room

	// choice timer bookkeeping: arm exactly one timer per open choice and
	// cancel it the instant the choice is gone
	if room.Choice == nil {
		if h.choiceTimer != nil {
			h.choiceTimer.Stop()
			h.choiceTimer = nil
			h.armedChoice = ""
		}
	} else if room.Choice.ID != h.armedChoice {
		if h.choiceTimer != nil {
			h.choiceTimer.Stop()
		}
		choiceID := room.Choice.ID
		room.Choice.Deadline = time.Now().Add(reg.choiceTimeout)
		h.armedChoice = choiceID
		h.choiceTimer = time.AfterFunc(reg.choiceTimeout, func() {
			reg.fireChoiceTimeout(room.ID, choiceID)
		})
	}

	if room.Finished && !room.StatsCounted {
		room.StatsCounted = true
		if reg.repo != nil {
			if err := reg.repo.UpdateStatsOnMatchEnd(room); err != nil {
				logging.Error("failed to update stats", err, logging.Fields{"room_id": room.ID})
			}
		}
	}

	snap, err := buildSnapshot(room).Marshal()
	if err != nil {
		logging.Error("failed to marshal snapshot", err, logging.Fields{"room_id": room.ID})
		return
	}
	for ch := range h.watchers {
		select {
		case ch <- snap:
		default:
			// slow watcher: drop this frame rather than stall the room
		}
	}
}

// fireChoiceTimeout applies the choice default when the timer fires. An
// explicit answer that won the race already cleared the choice, making
// this a no-op.
func (reg *Registry) fireChoiceTimeout(roomID, choiceID string) {
	h := reg.handle(roomID)
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.room.Choice == nil || h.room.Choice.ID != choiceID {
		return
	}
	engine.ResolveChoiceTimeout(h.room, reg.cat, choiceID)
	reg.afterMutation(h)
}
