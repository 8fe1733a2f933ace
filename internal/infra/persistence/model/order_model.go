package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Billing details are denormalized
// onto the row so the order stays readable even if the buyer's profile
// changes later. Amounts are integer minor units.
type OrderModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderNumber        string     `gorm:"type:varchar(64);unique;not null"`
	BuyerID            *uuid.UUID `gorm:"type:uuid;index"`
	BillingName        string     `gorm:"type:varchar(100);not null"`
	BillingEmail       string     `gorm:"type:varchar(255);not null"`
	BillingPhone       string     `gorm:"type:varchar(32)"`
	BillingLine1       string     `gorm:"type:varchar(255)"`
	BillingLine2       string     `gorm:"type:varchar(255)"`
	BillingCity        string     `gorm:"type:varchar(100)"`
	BillingState       string     `gorm:"type:varchar(100)"`
	BillingPostalCode  string     `gorm:"type:varchar(20)"`
	BillingCountry     string     `gorm:"type:varchar(100)"`
	Currency           string     `gorm:"type:varchar(8);not null"`
	SubtotalMinor      int64      `gorm:"not null"`
	TaxMinor           int64      `gorm:"not null"`
	TotalMinor         int64      `gorm:"not null"`
	PaymentStatus      string     `gorm:"type:varchar(16);not null;index"`
	ExternalPaymentRef string     `gorm:"type:varchar(128)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	LineItems []OrderLineItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineItemModel mirrors the 'order_line_items' table. CourseName is the
// title snapshotted at purchase time.
type OrderLineItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CourseID   string    `gorm:"type:varchar(64);not null"`
	Plan       string    `gorm:"type:varchar(16);not null"`
	CourseName string    `gorm:"type:varchar(255);not null"`
	PriceMinor int64     `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineItemModel) TableName() string {
	return "order_line_items"
}
