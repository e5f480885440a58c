package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"poezdka/internal/models"
)

// ErrDuplicateBookingNumber is returned when an order with the same
// booking number was already committed.
var ErrDuplicateBookingNumber = errors.New("duplicate booking number")

// SaveUser inserts or updates a user keyed by telegram id and fills in
// the internal id.
func (db *DB) SaveUser(ctx context.Context, u *models.User) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(telegram_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			updated_at = excluded.updated_at`,
		u.TelegramID, u.Username, u.FirstName, u.LastName, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE telegram_id = ?", u.TelegramID,
	).Scan(&u.ID)
}

// SaveOrder commits an order and its line items in one transaction.
// A booking-number collision maps to ErrDuplicateBookingNumber.
func (db *DB) SaveOrder(ctx context.Context, o *models.Order) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, booking_number, destination, travel_date, scenario_name, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.UserID, o.BookingNumber, o.Destination, o.TravelDate, o.ScenarioName, o.TotalPrice, o.Status,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, ErrDuplicateBookingNumber
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, kind, item_id, name, price)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, it.Kind, it.ItemID, it.Name, it.Price,
		); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	o.ID = orderID
	return orderID, nil
}

// OrdersForUser returns the user's orders newest-first, including line
// items, capped at limit.
func (db *DB) OrdersForUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, booking_number, destination, travel_date,
		       COALESCE(scenario_name, ''), total_price, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.BookingNumber, &o.Destination, &o.TravelDate,
			&o.ScenarioName, &o.TotalPrice, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := db.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (db *DB) orderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, order_id, kind, item_id, name, price
		FROM order_items WHERE order_id = ? ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Kind, &it.ItemID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveScenarioUsage records which scenario backed a committed booking.
func (db *DB) SaveScenarioUsage(ctx context.Context, userID int64, scenarioID, bookingNumber string) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO scenario_usage (user_id, scenario_id, booking_number) VALUES (?, ?, ?)",
		userID, scenarioID, bookingNumber,
	)
	return err
}

// SavePromoUsage records a promotion redeemed in a committed booking.
func (db *DB) SavePromoUsage(ctx context.Context, userID int64, promoID int, bookingNumber string) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO promo_usage (user_id, promo_id, booking_number) VALUES (?, ?, ?)",
		userID, promoID, bookingNumber,
	)
	return err
}
