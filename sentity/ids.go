// Package sentity holds the in-memory entity tables described by:
// Member, ShiftPattern, CoverageRequirement, SchedulingPeriod. Entities are
// immutable inputs to a compile session; rules
// read them but never mutate them.
package sentity

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// ValidateEntityID enforces the shared ID rule: non-empty, and never
// containing ':' (the assignment-variable-name delimiter) since that would
// make the wire contract's split-on-colon parse ambiguous.
func ValidateEntityID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id must not be empty")
	}
	if strings.Contains(id, ":") {
		return fmt.Errorf("id %q must not contain ':'", id)
	}
	return nil
}

// NewEntityID generates a UUIDv7 string for callers who construct an entity
// without supplying an explicit id.
func NewEntityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the system clock/rand source is broken;
		// fall back to V4 rather than propagating an error from a
		// convenience constructor.
		id = uuid.Must(uuid.NewV4())
	}
	return id.String()
}
