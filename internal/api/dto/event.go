package dto

// EventKind names one host-fired order-entry event.
type EventKind string

const (
	EventEntityChange       EventKind = "entity_change"
	EventShipAddressChange  EventKind = "ship_address_change"
	EventShipDateChange     EventKind = "ship_date_change"
	EventLineShipDateChange EventKind = "line_ship_date_change"
	EventLineCommit         EventKind = "line_commit"
	EventSave               EventKind = "save"
)

// Valid rejects unrecognized event kinds at the boundary instead of
// silently ignoring them.
func (k EventKind) Valid() bool {
	switch k {
	case EventEntityChange, EventShipAddressChange, EventShipDateChange,
		EventLineShipDateChange, EventLineCommit, EventSave:
		return true
	}
	return false
}

// LineScoped reports whether the event requires a line index.
func (k EventKind) LineScoped() bool {
	return k == EventLineShipDateChange || k == EventLineCommit
}

type EventRequest struct {
	Event EventKind `json:"event"`
	Role  FlexID    `json:"role"`
	Line  *int      `json:"line,omitempty"`
	Order Order     `json:"order"`
}

type EventResponse struct {
	Order    Order    `json:"order"`
	Messages []string `json:"messages"`
	Valid    bool     `json:"valid"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}
