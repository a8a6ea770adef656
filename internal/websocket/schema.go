package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestPayload is the single client message shape; the live feed is
// server-push, clients only ping to keep the connection alive.
type RequestPayload struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventAttendance Event = "attendance"
	EventPong       Event = "pong"
)

// AttendanceEventResponse pushes one committed attendance mark.
type AttendanceEventResponse struct {
	Event     Event  `json:"event"`
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Kind      string `json:"kind"`
	MarkedOn  string `json:"marked_on"`
	MarkedAt  string `json:"marked_at"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
