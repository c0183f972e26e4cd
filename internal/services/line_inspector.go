package services

import (
	"strings"

	"shipdate-policy-service/internal/domain"
)

// HasOutstandingSpecialItem reports whether any order line carries the
// special item code with quantity still to be invoiced. A line matches
// when its item text contains the code substring and quantity minus
// quantity billed is greater than zero. The scan short-circuits on the
// first match and never mutates the draft.
func HasOutstandingSpecialItem(draft *domain.OrderDraft, specialItemCode string) bool {
	if draft == nil || specialItemCode == "" {
		return false
	}

	for _, line := range draft.Lines {
		if !strings.Contains(line.Item, specialItemCode) {
			continue
		}
		if line.Outstanding() > 0 {
			return true
		}
	}
	return false
}
