package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/ports"
)

// PolicyConfig carries the identifiers the policy rules key on. All
// identifiers are canonical (int64 roles, terms, locations, accounts);
// normalization from host representations happens at the DTO boundary.
type PolicyConfig struct {
	SpecialItemCode     string
	DefaultCalendarID   string
	AlternateCalendarID string
	EnforcedRoles       map[domain.Role]struct{}

	FinancingTermsID    int64
	MaterialsLocationID int64
	CabinetAccountID    int64
}

// RoleEnforced reports whether policy violations block (clear the
// field) for the given role, as opposed to warning only.
func (c PolicyConfig) RoleEnforced(r domain.Role) bool {
	_, ok := c.EnforcedRoles[r]
	return ok
}

// FormController binds the policy rules to host-fired order-entry
// events. Every handler swallows and logs internal errors: this logic
// must never abort the host's edit/save pipeline, so correction happens
// only through proactive field clearing plus a user alert.
type FormController struct {
	cfg       PolicyConfig
	calendars *CalendarCache
	distance  ports.DistanceProvider
	items     ports.ItemCatalog
	notifier  ports.Notifier
	log       *zap.Logger
	now       func() time.Time
}

func NewFormController(
	cfg PolicyConfig,
	calendars *CalendarCache,
	distance ports.DistanceProvider,
	items ports.ItemCatalog,
	notifier ports.Notifier,
	log *zap.Logger,
) *FormController {
	return &FormController{
		cfg:       cfg,
		calendars: calendars,
		distance:  distance,
		items:     items,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// SetClock overrides the evaluation clock. Tests use this to pin the
// "is the candidate date in the future" check.
func (c *FormController) SetClock(now func() time.Time) { c.now = now }

// EntityChanged handles a change of the order's customer/entity:
// re-resolve the shipping distance and, when the ship date is in the
// future, re-run the distance rule.
func (c *FormController) EntityChanged(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext) {
	defer c.guard("entity changed")
	c.refreshDistance(ctx, draft, caller)
}

// ShipAddressChanged handles a change of the shipping address.
func (c *FormController) ShipAddressChanged(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext) {
	defer c.guard("ship address changed")
	c.refreshDistance(ctx, draft, caller)
}

// ShipDateChanged handles a change of the header ship date: resolve the
// distance first when it is unset, run the distance rule for future
// dates, then the blackout rule for blackout-enforced roles.
func (c *FormController) ShipDateChanged(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext) {
	defer c.guard("ship date changed")

	if draft.DistanceMiles == nil && draft.ShipAddress != "" {
		draft.ApplyDistance(c.resolveDistance(ctx, draft.ShipAddress))
	}
	c.runDistanceRule(draft, caller)
	c.runBlackoutRule(ctx, draft, caller, headerShipDate)
}

// LineShipDateChanged handles a change of a line-level ship date.
func (c *FormController) LineShipDateChanged(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext, line int) {
	defer c.guard("line ship date changed")
	c.runBlackoutRule(ctx, draft, caller, line)
}

// ValidateLine runs on line commit. Only newly added lines (no
// persisted line id) carrying the special item are checked: their ship
// date, falling back to the header ship date, must not sit on the
// alternate blackout calendar. Violations clear both ship-date fields.
// The line is always reported valid; correction is field-level only.
func (c *FormController) ValidateLine(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext, line int) bool {
	defer c.guard("validate line")

	if line < 0 || line >= len(draft.Lines) {
		return true
	}
	l := draft.Lines[line]
	if l.LineID != 0 {
		return true
	}
	if !strings.Contains(l.Item, c.cfg.SpecialItemCode) {
		return true
	}

	date := l.ShipDate
	if date == nil {
		date = draft.ShipDate
	}
	if date == nil {
		return true
	}

	alternate := c.calendars.Get(ctx, c.cfg.AlternateCalendarID)
	if alternate.Contains(*date) {
		c.notifier.Alert(lineCommitBlackoutMessage(c.cfg.SpecialItemCode, domain.DateKey(*date)))
		draft.ClearHeaderShipDate()
		draft.ClearLineShipDate(line)
	}
	return true
}

// SaveRecord runs the save-time payment-terms check and always reports
// the record valid: failed checks never block saving.
func (c *FormController) SaveRecord(ctx context.Context, draft *domain.OrderDraft) bool {
	defer c.guard("save record")
	c.checkMaterialsOrder(ctx, draft)
	return true
}

// refreshDistance resolves the distance for the current ship address,
// stores it on the draft, and re-runs the distance rule.
func (c *FormController) refreshDistance(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext) {
	if draft.ShipAddress == "" {
		return
	}
	draft.ApplyDistance(c.resolveDistance(ctx, draft.ShipAddress))
	c.runDistanceRule(draft, caller)
}

// resolveDistance converts any resolver failure into an unresolved
// result. The event pipeline continues degraded either way.
func (c *FormController) resolveDistance(ctx context.Context, destination string) domain.DistanceResult {
	result, err := c.distance.Resolve(ctx, destination)
	if err != nil {
		c.log.Error("resolve shipping distance",
			zap.String("destination", destination),
			zap.Error(err),
		)
		return domain.DistanceResult{}
	}
	return result
}

// runDistanceRule evaluates the distance/day-of-week rule when the
// header ship date is strictly in the future and a distance is known.
// An absent distance is never evaluated (absence is not zero).
func (c *FormController) runDistanceRule(draft *domain.OrderDraft, caller domain.CallerContext) {
	if draft.ShipDate == nil || draft.DistanceMiles == nil {
		return
	}
	if !draft.ShipDate.After(c.now()) {
		return
	}

	verdict := EvaluateDistance(*draft.ShipDate, *draft.DistanceMiles, c.cfg.RoleEnforced(caller.Role))
	if verdict.Message != "" {
		c.notifier.Alert(verdict.Message)
	}
	if !verdict.Admissible && verdict.Enforce {
		draft.ClearHeaderShipDate()
	}
}

// headerShipDate marks a blackout check triggered by the header field
// rather than a line.
const headerShipDate = -1

// runBlackoutRule checks the candidate ship date (header, or the given
// line's) against the blackout calendars. Only blackout-enforced roles
// are subject to the rule. A default-calendar hit clears the triggering
// field; an alternate-calendar hit (orders with an outstanding special
// item) clears the header and every line ship date together.
func (c *FormController) runBlackoutRule(ctx context.Context, draft *domain.OrderDraft, caller domain.CallerContext, line int) {
	if !c.cfg.RoleEnforced(caller.Role) {
		return
	}

	var date *time.Time
	if line == headerShipDate {
		date = draft.ShipDate
	} else if line >= 0 && line < len(draft.Lines) {
		date = draft.Lines[line].ShipDate
	}
	if date == nil {
		return
	}

	defaultCal := c.calendars.Get(ctx, c.cfg.DefaultCalendarID)
	if defaultCal.Contains(*date) {
		c.notifier.Alert(msgBlackoutDate)
		if line == headerShipDate {
			draft.ClearHeaderShipDate()
		} else {
			draft.ClearLineShipDate(line)
		}
		return
	}

	if !HasOutstandingSpecialItem(draft, c.cfg.SpecialItemCode) {
		return
	}

	alternate := c.calendars.Get(ctx, c.cfg.AlternateCalendarID)
	if alternate.Contains(*date) {
		c.notifier.Alert(alternateBlackoutMessage(c.cfg.SpecialItemCode))
		draft.ClearAllShipDates()
	}
}

// checkMaterialsOrder flags financing orders that include materials
// inventory: when terms match the financing terms id and the flag is
// not yet set, any line at the materials location whose item posts to
// the cabinet inventory account sets the flag.
func (c *FormController) checkMaterialsOrder(ctx context.Context, draft *domain.OrderDraft) {
	if draft.Terms != c.cfg.FinancingTermsID || draft.MaterialsOrder {
		return
	}
	if c.items == nil {
		return
	}

	for _, l := range draft.Lines {
		if l.Location != c.cfg.MaterialsLocationID || l.ItemID == 0 {
			continue
		}

		account, err := c.items.AssetAccount(ctx, l.ItemID)
		if err != nil {
			c.log.Error("item asset account lookup",
				zap.Int64("item_id", l.ItemID),
				zap.Error(err),
			)
			continue
		}
		if account == c.cfg.CabinetAccountID {
			draft.MaterialsOrder = true
			return
		}
	}
}

// guard keeps panics inside the event boundary.
func (c *FormController) guard(event string) {
	if r := recover(); r != nil {
		c.log.Error("order event handler panic",
			zap.String("event", event),
			zap.Any("panic", r),
		)
	}
}
