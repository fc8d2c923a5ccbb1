package entities

import (
	"strings"

	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// MinScore and MaxScore bound ratings and review scores
const (
	MinScore = 1
	MaxScore = 5
)

// ValidScore reports whether score is an allowed rating
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Validate checks the fields a favorite needs before it is stored
func (f *FavoritePlace) Validate() error {
	if err := missing(
		required{"id", f.ID != ""},
		required{"name", f.Name != ""},
		required{"type", f.Type != ""},
		required{"location", f.Location != ""},
		required{"userId", f.UserID != ""},
	); err != nil {
		return err
	}
	if !f.Type.Favoritable() {
		return apperrors.NewValidationError("type must be restaurant, hotel or activity")
	}
	return nil
}

// Validate checks the fields a rating needs before it is stored
func (r *Rating) Validate() error {
	return validateScored(r.PlaceID, r.PlaceType, r.UserID, r.UserName, r.Rating)
}

// Validate checks the fields a review needs before it is stored
func (r *Review) Validate() error {
	return validateScored(r.PlaceID, r.PlaceType, r.UserID, r.UserName, r.Rating)
}

func validateScored(placeID string, placeType PlaceType, userID, userName string, score int) error {
	if err := missing(
		required{"placeId", placeID != ""},
		required{"placeType", placeType != ""},
		required{"userId", userID != ""},
		required{"userName", userName != ""},
		required{"rating", score != 0},
	); err != nil {
		return err
	}
	if !placeType.Valid() {
		return apperrors.NewValidationError("invalid placeType: " + string(placeType))
	}
	if !ValidScore(score) {
		return apperrors.NewValidationError("rating must be an integer between 1 and 5")
	}
	return nil
}

// required pairs a JSON field name with whether it was supplied
type required struct {
	name    string
	present bool
}

// missing names every absent field
func missing(fields ...required) error {
	var names []string
	for _, f := range fields {
		if !f.present {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return apperrors.NewValidationError("missing required fields: " + strings.Join(names, ", "))
}
