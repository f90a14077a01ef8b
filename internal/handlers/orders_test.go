package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestStatusTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderStatusPending, models.OrderStatusProcessing},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusProcessing, models.OrderStatusCompleted},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
		{models.OrderStatusCompleted, models.OrderStatusRefunded},
	}
	for _, tt := range allowed {
		if !statusTransitionAllowed(tt.from, tt.to) {
			t.Fatalf("expected %s -> %s to be allowed", tt.from, tt.to)
		}
	}

	forbidden := []struct{ from, to string }{
		{models.OrderStatusPending, models.OrderStatusCompleted},
		{models.OrderStatusPending, models.OrderStatusRefunded},
		{models.OrderStatusCompleted, models.OrderStatusPending},
		{models.OrderStatusCancelled, models.OrderStatusProcessing},
		{models.OrderStatusRefunded, models.OrderStatusCompleted},
		{models.OrderStatusPending, models.OrderStatusPending},
	}
	for _, tt := range forbidden {
		if statusTransitionAllowed(tt.from, tt.to) {
			t.Fatalf("expected %s -> %s to be rejected", tt.from, tt.to)
		}
	}
}
