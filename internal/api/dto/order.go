package dto

import (
	"fmt"
	"time"

	"shipdate-policy-service/internal/domain"
)

const dateLayout = "2006-01-02"

type OrderLine struct {
	ID             FlexID  `json:"id,omitempty"`
	ItemID         FlexID  `json:"item_id,omitempty"`
	Item           string  `json:"item"`
	Quantity       float64 `json:"quantity"`
	QuantityBilled float64 `json:"quantity_billed"`
	ShipDate       string  `json:"ship_date,omitempty"`
	Location       FlexID  `json:"location,omitempty"`
}

type Order struct {
	Entity           string    `json:"entity,omitempty"`
	ShipAddress      string    `json:"ship_address,omitempty"`
	ShipDate         string    `json:"ship_date,omitempty"`
	Terms            FlexID    `json:"terms,omitempty"`
	MaterialsOrder   bool      `json:"materials_order,omitempty"`
	ShippingDistance *float64  `json:"shipping_distance,omitempty"`
	DistanceNotes    string    `json:"distance_notes,omitempty"`
	Lines            []OrderLine `json:"lines"`
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a %s date", field, value, dateLayout)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// ToDomain converts and validates the snapshot. Dates must be civil
// YYYY-MM-DD values; identifier fields are already canonical via
// FlexID.
func (o Order) ToDomain() (*domain.OrderDraft, error) {
	shipDate, err := parseDate("ship_date", o.ShipDate)
	if err != nil {
		return nil, err
	}

	draft := &domain.OrderDraft{
		Entity:         o.Entity,
		ShipAddress:    o.ShipAddress,
		ShipDate:       shipDate,
		Terms:          int64(o.Terms),
		MaterialsOrder: o.MaterialsOrder,
		DistanceMiles:  o.ShippingDistance,
		DistanceNotes:  o.DistanceNotes,
		Lines:          make([]domain.OrderLine, 0, len(o.Lines)),
	}

	for i, l := range o.Lines {
		lineDate, err := parseDate(fmt.Sprintf("lines[%d].ship_date", i), l.ShipDate)
		if err != nil {
			return nil, err
		}
		draft.Lines = append(draft.Lines, domain.OrderLine{
			LineID:         int64(l.ID),
			ItemID:         int64(l.ItemID),
			Item:           l.Item,
			Quantity:       l.Quantity,
			QuantityBilled: l.QuantityBilled,
			ShipDate:       lineDate,
			Location:       int64(l.Location),
		})
	}

	return draft, nil
}

// OrderFromDomain converts a draft back to its wire form.
func OrderFromDomain(d *domain.OrderDraft) Order {
	out := Order{
		Entity:           d.Entity,
		ShipAddress:      d.ShipAddress,
		ShipDate:         formatDate(d.ShipDate),
		Terms:            FlexID(d.Terms),
		MaterialsOrder:   d.MaterialsOrder,
		ShippingDistance: d.DistanceMiles,
		DistanceNotes:    d.DistanceNotes,
		Lines:            make([]OrderLine, 0, len(d.Lines)),
	}

	for _, l := range d.Lines {
		out.Lines = append(out.Lines, OrderLine{
			ID:             FlexID(l.LineID),
			ItemID:         FlexID(l.ItemID),
			Item:           l.Item,
			Quantity:       l.Quantity,
			QuantityBilled: l.QuantityBilled,
			ShipDate:       formatDate(l.ShipDate),
			Location:       FlexID(l.Location),
		})
	}

	return out
}
