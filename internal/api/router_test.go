package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"shipdate-policy-service/internal/adapters/distance"
	"shipdate-policy-service/internal/api/dto"
	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/ports"
	"shipdate-policy-service/internal/services"
)

type fixedCalendarSource struct {
	dates map[string][]time.Time
}

func (s *fixedCalendarSource) PageCount(ctx context.Context, calendarID string, pageSize int) (int, error) {
	if len(s.dates[calendarID]) == 0 {
		return 0, nil
	}
	return 1, nil
}

func (s *fixedCalendarSource) FetchPage(ctx context.Context, calendarID string, page, pageSize int) ([]time.Time, error) {
	return s.dates[calendarID], nil
}

type fixedItemCatalog struct{}

func (fixedItemCatalog) AssetAccount(ctx context.Context, itemID int64) (int64, error) {
	if itemID == 5207 {
		return 726, nil
	}
	return 0, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *services.SessionRegistry) {
	t.Helper()

	source := &fixedCalendarSource{dates: map[string][]time.Time{
		"blackout-default": {time.Date(2026, 11, 26, 0, 0, 0, 0, time.UTC)},
		"blackout-special": {time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)},
	}}
	provider := distance.NewMockDistanceProvider(map[string]domain.DistanceResult{
		"10 Elm St, Columbia, MD": domain.ResolvedMiles(50, "10 Elm St, Columbia, MD 21044, USA"),
	})
	cfg := services.PolicyConfig{
		SpecialItemCode:     "00401",
		DefaultCalendarID:   "blackout-default",
		AlternateCalendarID: "blackout-special",
		EnforcedRoles:       map[domain.Role]struct{}{1022: {}},
		FinancingTermsID:    8,
		MaterialsLocationID: 17,
		CabinetAccountID:    726,
	}

	registry := services.NewSessionRegistry(func(notifier ports.Notifier) *services.FormController {
		c := services.NewFormController(
			cfg,
			services.NewCalendarCache(source, zap.NewNop()),
			provider,
			fixedItemCatalog{},
			notifier,
			zap.NewNop(),
		)
		c.SetClock(func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) })
		return c
	})

	srv := httptest.NewServer(NewRouter(registry))
	t.Cleanup(srv.Close)
	return srv, registry
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/v1/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}

	var sr dto.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if sr.SessionID == "" {
		t.Fatal("empty session id")
	}
	return sr.SessionID
}

func postEvent(t *testing.T, srv *httptest.Server, sessionID, body string) (*http.Response, dto.EventResponse) {
	t.Helper()

	url := fmt.Sprintf("%s/api/v1/sessions/%s/events", srv.URL, sessionID)
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post event: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var er dto.EventResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			t.Fatalf("decode event response: %v", err)
		}
	}
	return resp, er
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv, registry := newTestServer(t)

	id := createSession(t, srv)
	if _, ok := registry.Get(id); !ok {
		t.Fatal("created session not in registry")
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/sessions/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	if _, ok := registry.Get(id); ok {
		t.Fatal("session survived deletion")
	}
}

func TestEventUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := postEvent(t, srv, "no-such-session", `{"event":"save","role":1022,"order":{"lines":[]}}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestEventUnknownKind(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, _ := postEvent(t, srv, id, `{"event":"field_change","role":1022,"order":{"lines":[]}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestEventUnknownField(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, _ := postEvent(t, srv, id, `{"event":"save","role":1022,"bogus":true,"order":{"lines":[]}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestEventLineIndexRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, _ := postEvent(t, srv, id, `{"event":"line_commit","role":1022,"order":{"lines":[{"item":"X","quantity":1}]}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing line: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = postEvent(t, srv, id, `{"event":"line_commit","role":1022,"line":5,"order":{"lines":[{"item":"X","quantity":1}]}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("out of range line: status = %d, want 400", resp.StatusCode)
	}
}

func TestEventBadDate(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, _ := postEvent(t, srv, id, `{"event":"ship_date_change","role":1022,"order":{"ship_date":"09/21/2026","lines":[]}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestShipDateChangeEventClearsMondayOverLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	// 2026-09-21 is a Monday; the address resolves to 50 miles.
	body := `{
		"event": "ship_date_change",
		"role": 1022,
		"order": {
			"ship_address": "10 Elm St, Columbia, MD",
			"ship_date": "2026-09-21",
			"lines": []
		}
	}`

	resp, er := postEvent(t, srv, id, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if er.Order.ShipDate != "" {
		t.Fatalf("ShipDate = %q, want cleared", er.Order.ShipDate)
	}
	if er.Order.ShippingDistance == nil || *er.Order.ShippingDistance != 50 {
		t.Fatalf("ShippingDistance = %v, want 50", er.Order.ShippingDistance)
	}
	if len(er.Messages) != 1 || !strings.Contains(er.Messages[0], "35 miles") {
		t.Fatalf("Messages = %v, want the Monday alert", er.Messages)
	}
	if !er.Valid {
		t.Fatal("events always report valid")
	}
}

func TestShipDateChangeEventAdvisoryRoleKeepsDate(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	body := `{
		"event": "ship_date_change",
		"role": "3",
		"order": {
			"ship_address": "10 Elm St, Columbia, MD",
			"ship_date": "2026-09-21",
			"lines": []
		}
	}`

	resp, er := postEvent(t, srv, id, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if er.Order.ShipDate != "2026-09-21" {
		t.Fatalf("ShipDate = %q, want retained", er.Order.ShipDate)
	}
	if len(er.Messages) != 1 || !strings.Contains(er.Messages[0], "proceed with caution") {
		t.Fatalf("Messages = %v, want the advisory alert", er.Messages)
	}
}

func TestSaveEventFlagsMaterialsOrder(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	body := `{
		"event": "save",
		"role": 1022,
		"order": {
			"terms": "8",
			"lines": [{"item_id": 5207, "item": "Cabinet Base 36in", "quantity": 1, "location": 17}]
		}
	}`

	resp, er := postEvent(t, srv, id, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !er.Order.MaterialsOrder {
		t.Fatal("materials order flag not set")
	}
	if !er.Valid {
		t.Fatal("save always reports valid")
	}
}

func TestLineCommitEventClearsAlternateBlackout(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	// New special-handling line, header date on the alternate calendar.
	body := `{
		"event": "line_commit",
		"role": 1022,
		"line": 0,
		"order": {
			"ship_date": "2026-09-14",
			"lines": [{"item": "ITM-00401-X", "quantity": 1}]
		}
	}`

	resp, er := postEvent(t, srv, id, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if er.Order.ShipDate != "" {
		t.Fatalf("ShipDate = %q, want cleared", er.Order.ShipDate)
	}
	if len(er.Messages) != 1 || !strings.Contains(er.Messages[0], "2026-09-14") {
		t.Fatalf("Messages = %v, want the line-commit alert", er.Messages)
	}
	if !er.Valid {
		t.Fatal("line commit always reports valid")
	}
}

func TestEventMessagesNeverNull(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	url := fmt.Sprintf("%s/api/v1/sessions/%s/events", srv.URL, id)
	resp, err := http.Post(url, "application/json", strings.NewReader(`{"event":"save","role":3,"order":{"lines":[]}}`))
	if err != nil {
		t.Fatalf("post event: %v", err)
	}
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["messages"]) != "[]" {
		t.Fatalf("messages = %s, want []", raw["messages"])
	}
}
