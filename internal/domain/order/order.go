package order

// Package order contains the order status model used by the shipment sync
// bridge. Sync advances strictly along the fulfillment chain, one step per
// call; no other transition is valid.

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// syncChain is the only sequence the shipment sync bridge may walk.
var syncChain = map[Status]Status{
	StatusConfirmed:      StatusShipped,
	StatusShipped:        StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// NextSyncStatus returns the status one step further along the fulfillment
// chain. ok is false for terminal or pre-confirmation statuses.
func NextSyncStatus(s Status) (Status, bool) {
	next, ok := syncChain[s]
	return next, ok
}

// Syncable reports whether the shipment bridge may advance this status.
func Syncable(s Status) bool {
	_, ok := syncChain[s]
	return ok
}

// Order is the slice of the order row the payment and shipment bridges need.
type Order struct {
	ID             string    `json:"id"              db:"id"`
	TenantAdminID  string    `json:"tenant_admin_id" db:"tenant_admin_id"`
	UserID         string    `json:"user_id"         db:"user_id"`
	Status         Status    `json:"status"          db:"status"`
	TrackingNumber *string   `json:"tracking_number" db:"tracking_number"`
	TotalAmount    int64     `json:"total_amount"    db:"total_amount"`
	Currency       string    `json:"currency"        db:"currency"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// StatusChange is one audit row written on every sync transition.
type StatusChange struct {
	ID         string    `json:"id"          db:"id"`
	OrderID    string    `json:"order_id"    db:"order_id"`
	FromStatus Status    `json:"from_status" db:"from_status"`
	ToStatus   Status    `json:"to_status"   db:"to_status"`
	Note       string    `json:"note"        db:"note"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}
