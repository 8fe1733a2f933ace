// Package entity contains the core business objects of the project.
package entity

// Plan identifies the access duration a course is purchased under.
type Plan string

const (
	// PlanShort is the short-duration access plan.
	PlanShort Plan = "short"
	// PlanLong is the long-duration access plan.
	PlanLong Plan = "long"
)

// IsValid reports whether p is one of the known plans.
func (p Plan) IsValid() bool {
	return p == PlanShort || p == PlanLong
}

// CartItem is a single (course, plan) selection. The price travels as the
// display string the client saw; the server re-parses it into minor units and
// never trusts client arithmetic.
type CartItem struct {
	CourseID string `json:"course_id"`
	Plan     Plan   `json:"plan"`
	Price    string `json:"price"`
}

// Cart is the client-held selection of items. The server never persists a
// cart; this type exists to give the client contract a single place: items are
// keyed by (course, plan) and deduplicated, and the cart is cleared only when
// an order reaches completed.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add appends item unless an item with the same (course, plan) key already
// exists, in which case the call is a no-op rather than a duplicate line.
func (c *Cart) Add(item CartItem) {
	for _, existing := range c.Items {
		if existing.CourseID == item.CourseID && existing.Plan == item.Plan {
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the item with the given (course, plan) key, if present.
func (c *Cart) Remove(courseID string, plan Plan) {
	for i, existing := range c.Items {
		if existing.CourseID == courseID && existing.Plan == plan {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)

			return
		}
	}
}

// Clear empties the cart. Callers must invoke this only after the associated
// order reached completed; a failed payment leaves the cart intact so the
// buyer can retry.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
