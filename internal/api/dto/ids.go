package dto

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexID normalizes host identifiers to a canonical int64 at the API
// boundary. Host platforms report role, terms, location, and record
// ids as strings or numbers interchangeably; nothing past this type
// ever compares both representations.
type FlexID int64

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("identifier %q is not numeric", b)
	}
	*f = FlexID(n)
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(f), 10)), nil
}
