package domain

import "time"

const OrderConfirmed = "order_confirmed"

type OrderLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// OrderMessage is what the storefront publishes when an order is placed.
type OrderMessage struct {
	Type          string      `json:"type"`
	OrderID       string      `json:"order_id"`
	OutletID      string      `json:"outlet_id"`
	TableID       string      `json:"table_id,omitempty"`
	Items         []OrderLine `json:"items"`
	Total         int64       `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Timestamp     time.Time   `json:"timestamp"`
}
