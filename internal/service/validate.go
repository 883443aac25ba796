package service

import (
	"fmt"

	"attendance-tracker/internal/apperrors"

	"github.com/google/uuid"
)

// checkID rejects malformed identifiers before they reach the storage layer.
func checkID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Validation(fmt.Sprintf("malformed %s: %q", field, id))
	}
	return nil
}
