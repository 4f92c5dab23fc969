package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junseokho/HackClad-sub000/internal/config"
	"github.com/junseokho/HackClad-sub000/internal/constants"
	"github.com/junseokho/HackClad-sub000/internal/engine"
	"github.com/junseokho/HackClad-sub000/internal/service"
)

// RoomHandler exposes the match lifecycle: create a room for a matched
// roster, read its snapshot and submit intents against it.
type RoomHandler struct {
	reg *service.Registry
	cfg *config.LoadedConfig
}

func NewRoomHandler(reg *service.Registry, cfg *config.LoadedConfig) *RoomHandler {
	return &RoomHandler{reg: reg, cfg: cfg}
}

type seatRequest struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Character string `json:"character"`
}

type createRoomRequest struct {
	// Ticket is the matchmaking ticket; duplicate create calls for the
	// same ticket return the same room.
	Ticket string        `json:"ticket"`
	Seats  []seatRequest `json:"seats"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Ticket == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	// The creating session must hold one of the seats.
	_, _, callerUUID := sessionIdentity(c)
	holdsSeat := false
	for _, s := range req.Seats {
		if s.UserID == callerUUID {
			holdsSeat = true
			break
		}
	}
	if !holdsSeat {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInRoom})
		return
	}

	seats := make([]engine.Seat, 0, len(req.Seats))
	for _, s := range req.Seats {
		seats = append(seats, engine.Seat{
			UserID:          s.UserID,
			Nickname:        s.Nickname,
			Character:       s.Character,
			StarterDeck:     append([]string(nil), h.cfg.StarterDeck...),
			EnhancedChoices: append([]string(nil), h.cfg.EnhancedPool...),
		})
	}
	snap, err := h.reg.CreateRoom(req.Ticket, seats)
	if err != nil {
		if errors.Is(err, service.ErrNoSeats) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRoom})
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID := c.Param("roomID")
	snap, err := h.reg.GetSnapshot(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitIntent applies one player command to the room. Engine rejections
// leave the room untouched and map to 409.
func (h *RoomHandler) SubmitIntent(c *gin.Context) {
	roomID := c.Param("roomID")
	_, _, callerUUID := sessionIdentity(c)
	if callerUUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if !h.reg.HasPlayer(roomID, callerUUID) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInRoom})
		return
	}

	var in service.Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	snap, err := h.reg.Dispatch(roomID, callerUUID, in)
	if err != nil {
		c.JSON(statusForIntentError(err), gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func statusForIntentError(err error) int {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownIntent), errors.Is(err, service.ErrBadFacing):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrPlayerNotInRoom):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrMatchFinished):
		return http.StatusGone
	default:
		// rule rejections: the room state did not permit the intent
		return http.StatusConflict
	}
}
