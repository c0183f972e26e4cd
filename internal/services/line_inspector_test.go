package services

import (
	"testing"

	"shipdate-policy-service/internal/domain"
)

func TestHasOutstandingSpecialItem(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.OrderLine
		want  bool
	}{
		{
			name: "match with outstanding quantity",
			lines: []domain.OrderLine{
				{Item: "ITM-00401-X", Quantity: 5, QuantityBilled: 2},
			},
			want: true,
		},
		{
			name: "match but fully billed",
			lines: []domain.OrderLine{
				{Item: "ITM-00401-X", Quantity: 5, QuantityBilled: 5},
			},
			want: false,
		},
		{
			name: "no matching item",
			lines: []domain.OrderLine{
				{Item: "ITM-00500", Quantity: 5},
			},
			want: false,
		},
		{
			name: "match on a later line",
			lines: []domain.OrderLine{
				{Item: "ITM-00500", Quantity: 1},
				{Item: "ITM-00401-X", Quantity: 5, QuantityBilled: 5},
				{Item: "SVC-00401", Quantity: 2, QuantityBilled: 0},
			},
			want: true,
		},
		{
			name:  "no lines",
			lines: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := &domain.OrderDraft{Lines: tt.lines}
			if got := HasOutstandingSpecialItem(draft, "00401"); got != tt.want {
				t.Errorf("HasOutstandingSpecialItem() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasOutstandingSpecialItemDoesNotMutate(t *testing.T) {
	draft := &domain.OrderDraft{Lines: []domain.OrderLine{
		{Item: "ITM-00401-X", Quantity: 5, QuantityBilled: 2},
	}}
	HasOutstandingSpecialItem(draft, "00401")

	if draft.Lines[0].Quantity != 5 || draft.Lines[0].QuantityBilled != 2 {
		t.Fatal("inspector must not mutate the draft")
	}
}

func TestHasOutstandingSpecialItemEmptyCode(t *testing.T) {
	draft := &domain.OrderDraft{Lines: []domain.OrderLine{{Item: "X", Quantity: 1}}}
	if HasOutstandingSpecialItem(draft, "") {
		t.Fatal("empty code must never match")
	}
}
