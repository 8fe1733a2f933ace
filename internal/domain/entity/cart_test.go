package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_Add_DeduplicatesByCourseAndPlan(t *testing.T) {
	cart := &Cart{}

	cart.Add(CartItem{CourseID: "c-programming", Plan: PlanShort, Price: "₹299"})
	cart.Add(CartItem{CourseID: "c-programming", Plan: PlanShort, Price: "₹299"})
	assert.Len(t, cart.Items, 1, "adding the same (course, plan) pair must be a no-op")

	// Same course under a different plan is a distinct line.
	cart.Add(CartItem{CourseID: "c-programming", Plan: PlanLong, Price: "₹2,999"})
	assert.Len(t, cart.Items, 2)
}

func TestCart_Remove(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{CourseID: "c-programming", Plan: PlanShort, Price: "₹299"})
	cart.Add(CartItem{CourseID: "data-structures", Plan: PlanLong, Price: "₹2,999"})

	cart.Remove("c-programming", PlanShort)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "data-structures", cart.Items[0].CourseID)

	// Removing something absent is harmless.
	cart.Remove("missing", PlanShort)
	assert.Len(t, cart.Items, 1)
}

func TestCart_Clear(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{CourseID: "c-programming", Plan: PlanShort, Price: "₹299"})

	assert.False(t, cart.IsEmpty())
	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestPlan_IsValid(t *testing.T) {
	assert.True(t, PlanShort.IsValid())
	assert.True(t, PlanLong.IsValid())
	assert.False(t, Plan("lifetime").IsValid())
}
