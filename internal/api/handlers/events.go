package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shipdate-policy-service/internal/api/dto"
	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/services"
)

// EventHandler dispatches host-fired order-entry events to the
// session's form controller and returns the mutated order snapshot
// together with the alerts the controller raised.
type EventHandler struct {
	Registry *services.SessionRegistry
}

func (h *EventHandler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Registry.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown session")
		return
	}

	var req dto.EventRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if !req.Event.Valid() {
		writeError(w, r, http.StatusBadRequest, "unrecognized event kind")
		return
	}

	var line int
	if req.Event.LineScoped() {
		if req.Line == nil {
			writeError(w, r, http.StatusBadRequest, "event requires a line index")
			return
		}
		line = *req.Line
		if line < 0 || line >= len(req.Order.Lines) {
			writeError(w, r, http.StatusBadRequest, "line index out of range")
			return
		}
	}

	draft, err := req.Order.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	caller := domain.CallerContext{Role: domain.Role(req.Role)}
	ctx := r.Context()
	valid := true

	messages := sess.Handle(func(c *services.FormController) {
		switch req.Event {
		case dto.EventEntityChange:
			c.EntityChanged(ctx, draft, caller)
		case dto.EventShipAddressChange:
			c.ShipAddressChanged(ctx, draft, caller)
		case dto.EventShipDateChange:
			c.ShipDateChanged(ctx, draft, caller)
		case dto.EventLineShipDateChange:
			c.LineShipDateChanged(ctx, draft, caller, line)
		case dto.EventLineCommit:
			valid = c.ValidateLine(ctx, draft, caller, line)
		case dto.EventSave:
			valid = c.SaveRecord(ctx, draft)
		}
	})

	if messages == nil {
		messages = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.EventResponse{
		Order:    dto.OrderFromDomain(draft),
		Messages: messages,
		Valid:    valid,
	})
}
