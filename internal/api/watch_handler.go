package api

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/junseokho/HackClad-sub000/internal/constants"
	"github.com/junseokho/HackClad-sub000/internal/logging"
	"github.com/junseokho/HackClad-sub000/internal/service"
)

// WatchHandler streams room snapshots over a websocket. Every committed
// intent pushes one full snapshot frame; clients render from the latest
// frame without needing history.
type WatchHandler struct {
	reg *service.Registry
}

func NewWatchHandler(reg *service.Registry) *WatchHandler {
	return &WatchHandler{reg: reg}
}

func (h *WatchHandler) Watch(c *gin.Context) {
	roomID := c.Param("roomID")

	snap, err := h.reg.GetSnapshot(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}

	frames, cancel, err := h.reg.Subscribe(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}
	defer cancel()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		logging.Error("websocket accept failed", err, logging.Fields{constants.LogFieldRoomID: roomID})
		return
	}
	defer conn.Close(websocket.StatusInternalError, "watch ended")

	// CloseRead discards inbound frames and cancels the context when the
	// peer goes away.
	ctx := conn.CloseRead(c.Request.Context())

	initial, err := snap.Marshal()
	if err != nil {
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, initial); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "client closed")
			return
		case frame, ok := <-frames:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "room closed")
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				return
			}
		}
	}
}
