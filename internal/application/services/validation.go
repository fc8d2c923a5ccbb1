package services

import (
	"strings"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// field pairs a JSON field name with whether the caller supplied it.
type field struct {
	name    string
	present bool
}

// requireFields returns a validation error naming every absent field.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
}

func validateScore(score int) error {
	if !entities.ValidScore(score) {
		return apperrors.NewValidationError("rating must be an integer between 1 and 5")
	}
	return nil
}

func validatePlaceType(t entities.PlaceType) error {
	if !t.Valid() {
		return apperrors.NewValidationError("invalid placeType: " + string(t))
	}
	return nil
}

// requireOwner rejects mutation by anyone but the stored owner.
func requireOwner(owner, caller, what string) error {
	if owner != caller {
		return apperrors.NewForbiddenError("you can only modify your own " + what)
	}
	return nil
}
