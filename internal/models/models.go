// Package models contains persisted record types shared between the
// dialog layer and storage.
package models

import "time"

// User is a Telegram user known to the bot.
type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is a single line of a committed order.
type OrderItem struct {
	ID      int64
	OrderID int64
	Kind    string // "ticket", "product" or "promotion"
	ItemID  string
	Name    string
	Price   float64
}

// Order is a confirmed booking. Created exactly once per successful
// confirmation and never mutated afterwards; booking number uniqueness
// is enforced by storage.
type Order struct {
	ID            int64
	UserID        int64
	BookingNumber string
	Destination   string
	TravelDate    string
	ScenarioName  string
	TotalPrice    float64
	Status        string
	Items         []OrderItem
	CreatedAt     time.Time
}

// Order statuses.
const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)
