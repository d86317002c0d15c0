package domain

import "fmt"

// IntegrityWarning is a non-fatal data mismatch. The operation that produced it
// proceeds using the authoritative value and returns the warning to the caller.
type IntegrityWarning struct {
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id"`
	Field     string `json:"field"`
	Expected  string `json:"expected"`
	Submitted string `json:"submitted"`
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("%s %s: %s mismatch (expected %s, submitted %s)",
		w.Entity, w.EntityID, w.Field, w.Expected, w.Submitted)
}
