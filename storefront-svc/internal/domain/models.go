package domain

import "time"

// MenuItem mirrors the FoodieOS item shape. Prices are paise.
type MenuItem struct {
	ID              string      `json:"id"`
	Name            string      `json:"h"`
	Price           int64       `json:"dp"`
	Category        string      `json:"ct"`
	Veg             bool        `json:"veg"`
	Weight          string      `json:"wt"`
	Energy          string      `json:"en"`
	Image           string      `json:"i"`
	BestSeller      bool        `json:"bestSeller,omitempty"`
	AddOns          []AddOn     `json:"addOns,omitempty"`
	ComboItems      []ComboItem `json:"comboItems,omitempty"`
	PreparationTime int         `json:"preparationTime,omitempty"`
	UpsellItems     []any       `json:"upsellItems,omitempty"`
}

type AddOn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type ComboItem struct {
	Name     string `json:"name"`
	Calories string `json:"calories"`
}

type MenuFilter struct {
	Search     string
	Categories []string
	Veg        bool
	NonVeg     bool
	Bestseller bool
}

type MenuRequest struct {
	OutletID string
	Category string
	Location Location
}

// QRCodeData is what a scanned code resolves to. Table codes carry TableID,
// outlet path codes carry FoodCategory instead.
type QRCodeData struct {
	TableID      string `json:"tableId,omitempty"`
	OutletID     string `json:"outletId"`
	OutletName   string `json:"outletName,omitempty"`
	TableNumber  string `json:"tableNumber,omitempty"`
	FoodCategory string `json:"foodCategory,omitempty"`
}

// Location is best effort. The zero value means unknown.
type Location struct {
	Lat   float64 `json:"lat,omitempty"`
	Lon   float64 `json:"lon,omitempty"`
	City  string  `json:"city,omitempty"`
	State string  `json:"state,omitempty"`
}

func (l Location) HasCoordinates() bool {
	return l.Lat != 0 || l.Lon != 0
}

type OrderLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type OrderEvent struct {
	Type          string      `json:"type"`
	OrderID       string      `json:"order_id"`
	OutletID      string      `json:"outlet_id"`
	TableID       string      `json:"table_id,omitempty"`
	Items         []OrderLine `json:"items"`
	Total         int64       `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Timestamp     time.Time   `json:"timestamp"`
}

const OrderConfirmed = "order_confirmed"
