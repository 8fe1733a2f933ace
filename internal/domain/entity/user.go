// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a unique buyer account.
// It contains only the most fundamental identity information.
type User struct {
	ID           uuid.UUID     // The Global Unique Identifier (GUID) for the user.
	Email        string        // The user's primary contact email, used as a login identifier.
	Name         string        // The user's display name or real name.
	BuyerProfile *BuyerProfile // A pointer to the buyer profile. Nil until the first order (lazy-created).
	CreatedAt    time.Time     // Timestamp of when this user account was created.
	UpdatedAt    time.Time     // Timestamp of the last modification to this user's data.
}

// BuyerProfile holds the marketplace-facing profile of a buyer. It is created
// lazily before the buyer's first order and is a hard precondition for order
// creation: an order must never reference a nonexistent profile.
type BuyerProfile struct {
	UserID    uuid.UUID // Foreign Key that links this profile to a core User entity.
	Name      string    // Display name shown on orders and receipts.
	Phone     string    // Contact phone number captured from billing details.
	AvatarRef string    // Reference to an externally hosted avatar image.
	Bio       string    // Free-form self description.
	CreatedAt time.Time // Timestamp of when this profile was created.
	UpdatedAt time.Time // Timestamp of the last modification to this profile.
}
