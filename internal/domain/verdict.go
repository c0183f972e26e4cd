package domain

// Role is a canonical caller role identifier. Host platforms report
// roles as strings or numbers interchangeably; everything past the DTO
// boundary uses this single type.
type Role int64

// CallerContext identifies the user whose edit triggered an evaluation.
type CallerContext struct {
	Role Role
}

// PolicyVerdict is the output of one policy evaluation.
//
// Admissible=false with Enforce=true blocks the date: the offending
// field is cleared. Admissible=false with Enforce=false is advisory
// only; the field is retained and the message is still surfaced.
type PolicyVerdict struct {
	Admissible bool
	Enforce    bool
	Message    string
}
