package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

func TestUsage_ListsEveryCommand(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)
	for _, c := range commands {
		assert.Contains(t, buf.String(), c.name)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	err := dispatch(context.Background(), &app{}, "teleport", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "teleport"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "auth service is unavailable, please try again later",
		describe(apperrors.NewServiceUnavailableError("auth", errors.New("dial tcp"))))
	assert.Equal(t, "boom", describe(errors.New("boom")))
}

func TestPlaceKey(t *testing.T) {
	place, err := placeKey("peru-cook", "restaurant")
	require.NoError(t, err)
	assert.Equal(t, entities.PlaceRestaurant, place.PlaceType)

	_, err = placeKey("peru-cook", "museum")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	_, err = placeKey("", "hotel")
	assert.Error(t, err)
}
