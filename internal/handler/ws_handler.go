package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/middleware"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	ws "github.com/chords-academy/chords-crm-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams committed attendance marks to the admin console.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AttendanceStream godoc
// WS /ws/v1/admin/attendance
// Subscribes to the attendance channel and forwards every committed mark.
// The feed is best-effort: a subscriber that connects late only sees marks
// from now on; the ledger is the source of truth.
func (h *WSHandler) AttendanceStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("admin_id", claims.AdminID).Logger()
	wsLog.Info().Msg("Admin connected to attendance stream")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.AttendanceEventChannel())
	defer sub.Close()

	// Read pump: ping handling plus close detection. Its exit tears the
	// connection down and unblocks the write loop below.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestPayload
			if err := ws.ReadJSON(conn, &msg); err != nil {
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Attendance stream closed")
			return
		case <-c.Request.Context().Done():
			return
		case raw, ok := <-sub.Channel():
			if !ok {
				return
			}

			var event model.AttendanceEvent
			if err := json.Unmarshal([]byte(raw.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed attendance event")
				continue
			}

			err := ws.WriteTyped(conn, ws.AttendanceEventResponse{
				Event:     ws.EventAttendance,
				StudentID: event.StudentID,
				FullName:  event.FullName,
				Kind:      string(event.Kind),
				MarkedOn:  event.MarkedOn,
				MarkedAt:  event.MarkedAt,
			})
			if err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping subscriber")
				return
			}
		}
	}
}
