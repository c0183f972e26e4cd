package domain

import "time"

// Represents a single item line on an in-progress sales order.
// A line carries the item's display text alongside its persisted
// identifier; newly added lines have no identifier yet.
type OrderLine struct {
	LineID         int64
	ItemID         int64
	Item           string
	Quantity       float64
	QuantityBilled float64
	ShipDate       *time.Time
	Location       int64
}

// Outstanding returns the quantity not yet invoiced.
func (l OrderLine) Outstanding() float64 { return l.Quantity - l.QuantityBilled }

// OrderDraft is the in-progress order owned by one editing session.
// It is plain data: all mutation happens through the form controller
// in response to policy verdicts.
type OrderDraft struct {
	Entity         string
	ShipAddress    string
	ShipDate       *time.Time
	Terms          int64
	MaterialsOrder bool

	// DistanceMiles is nil until a distance has been resolved.
	// Absence is distinct from zero and must never be evaluated as zero.
	DistanceMiles *float64
	DistanceNotes string

	Lines []OrderLine
}

// ClearHeaderShipDate drops the header-level ship date.
func (o *OrderDraft) ClearHeaderShipDate() { o.ShipDate = nil }

// ClearLineShipDate drops the ship date on a single line.
// Out-of-range indexes are ignored.
func (o *OrderDraft) ClearLineShipDate(line int) {
	if line < 0 || line >= len(o.Lines) {
		return
	}
	o.Lines[line].ShipDate = nil
}

// ClearAllShipDates drops the header ship date and every line-level
// ship date together.
func (o *OrderDraft) ClearAllShipDates() {
	o.ShipDate = nil
	for i := range o.Lines {
		o.Lines[i].ShipDate = nil
	}
}

// ApplyDistance stores a resolution result on the draft. An unresolved
// result clears the distance; the note field is only overwritten when
// the resolver produced one.
func (o *OrderDraft) ApplyDistance(r DistanceResult) {
	o.DistanceMiles = r.Miles
	if r.Note != "" {
		o.DistanceNotes = r.Note
	}
}
