package models_test

import (
	"testing"

	"lapak/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusProcessing, true},
		{models.StatusProcessing, models.StatusShipped, true},
		{models.StatusShipped, models.StatusDelivered, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusProcessing, models.StatusCancelled, true},
		{models.StatusShipped, models.StatusCancelled, true},
		{models.StatusDelivered, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusPending, models.StatusShipped, false},
		{models.StatusDelivered, models.StatusPending, false},
		{models.StatusCancelled, models.StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, models.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled,
	} {
		assert.True(t, models.IsValidStatus(s))
	}
	assert.False(t, models.IsValidStatus(models.OrderStatus("teleported")))
	assert.False(t, models.IsValidStatus(models.OrderStatus("")))
}
