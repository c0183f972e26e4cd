package domain

// NoteNoValidCity is the fixed diagnostic written to the order when the
// resolved destination address lacks city-level granularity.
const NoteNoValidCity = "Shipping Distance Error, No Valid City"

// Outcome of one distance resolution. The zero value means unresolved.
//
// On a full success Note carries the resolved destination address; on a
// data-quality failure it carries NoteNoValidCity and Miles stays nil so
// policy rules never evaluate against a wrong distance.
type DistanceResult struct {
	Miles           *float64
	ResolvedAddress string
	Note            string
}

// Resolved reports whether a usable distance was produced.
func (r DistanceResult) Resolved() bool { return r.Miles != nil }

// ResolvedMiles builds a fully resolved result for the given distance
// and destination address.
func ResolvedMiles(miles float64, address string) DistanceResult {
	return DistanceResult{Miles: &miles, ResolvedAddress: address, Note: address}
}
