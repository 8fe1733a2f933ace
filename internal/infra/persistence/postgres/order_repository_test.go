package postgres

import (
	"testing"

	"coursecart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMappers_BillingSnapshotRoundTrip(t *testing.T) {
	buyerID := uuid.New()
	order := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260831-1A2B3C4D",
		BuyerID:     &buyerID,
		Billing: entity.BillingDetails{
			Name:  "Asha Verma",
			Email: "asha@example.com",
			Phone: "+919999999999",
			Address: entity.Address{
				Line1:      "221B MG Road",
				Line2:      "Flat 4, Tower C",
				City:       "Bengaluru",
				State:      "Karnataka",
				PostalCode: "560001",
				Country:    "IN",
			},
		},
		LineItems: []entity.OrderLineItem{{
			ID:         uuid.New(),
			CourseID:   "course-algo",
			Plan:       entity.PlanShort,
			CourseName: "Algorithms Deep Dive",
			PriceMinor: 299,
		}},
		Currency:      "INR",
		SubtotalMinor: 299,
		TaxMinor:      54,
		TotalMinor:    353,
		PaymentStatus: entity.PaymentStatusPending,
	}

	row := fromOrderDomain(order)
	require.NotNil(t, row)

	// Every billing field lands in its denormalized column.
	assert.Equal(t, "221B MG Road", row.BillingLine1)
	assert.Equal(t, "Flat 4, Tower C", row.BillingLine2)
	assert.Equal(t, "Bengaluru", row.BillingCity)

	back := toOrderDomain(row)
	require.NotNil(t, back)
	assert.Equal(t, order.Billing, back.Billing)
	assert.Equal(t, order.LineItems, back.LineItems)
	assert.Equal(t, order.TotalMinor, back.TotalMinor)
	assert.Equal(t, order.PaymentStatus, back.PaymentStatus)
}
