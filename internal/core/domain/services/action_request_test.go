package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/services"
)

func TestParseActionRequest(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    services.ActionRequest
		ok      bool
	}{
		{
			name:    "mark delivered",
			message: "mark delivery 42 as delivered",
			want:    services.ActionRequest{TrackingNumber: "42", TargetStatus: delivery.StatusDelivered},
			ok:      true,
		},
		{
			name:    "hyphenated tracking number with hash",
			message: "please update order #ORD-1021 to picked up",
			want:    services.ActionRequest{TrackingNumber: "ord-1021", TargetStatus: delivery.StatusPickedUp},
			ok:      true,
		},
		{
			name:    "set in transit",
			message: "set package abc7 in transit",
			want:    services.ActionRequest{TrackingNumber: "abc7", TargetStatus: delivery.StatusInTransit},
			ok:      true,
		},
		{
			name:    "change to returned",
			message: "change shipment 9 to returned",
			want:    services.ActionRequest{TrackingNumber: "9", TargetStatus: delivery.StatusReturned},
			ok:      true,
		},
		{
			name:    "question without a verb is not a command",
			message: "was delivery 42 delivered?",
			ok:      false,
		},
		{
			name:    "verb without a delivery reference",
			message: "mark everything as delivered",
			ok:      false,
		},
		{
			name:    "verb and reference without a target status",
			message: "update delivery 42",
			ok:      false,
		},
		{
			name:    "unrelated chatter",
			message: "what a lovely day for deliveries",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := services.ParseActionRequest(tt.message)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
