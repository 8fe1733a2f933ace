package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{from: PaymentStatusPending, to: PaymentStatusCompleted, want: true},
		{from: PaymentStatusPending, to: PaymentStatusFailed, want: true},
		{from: PaymentStatusPending, to: PaymentStatusPending, want: false},
		{from: PaymentStatusCompleted, to: PaymentStatusPending, want: false},
		{from: PaymentStatusCompleted, to: PaymentStatusFailed, want: false},
		{from: PaymentStatusFailed, to: PaymentStatusCompleted, want: false},
		{from: PaymentStatusFailed, to: PaymentStatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.True(t, PaymentStatusCompleted.IsTerminal())
	assert.True(t, PaymentStatusFailed.IsTerminal())
}
