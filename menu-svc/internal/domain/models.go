package domain

// Fixed admin category set, in the order the storefront lists them.
var Categories = []string{"BEVERAGES", "STARTERS", "MAIN COURSE", "DESSERTS"}

func IsCategory(ct string) bool {
	for _, c := range Categories {
		if c == ct {
			return true
		}
	}
	return false
}

// MenuItem uses the FoodieOS short field names on the wire. Prices are paise.
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
	UpsellItems     []string    `json:"upsellItems,omitempty"`
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

type SaveResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	IsNew   bool   `json:"isNew"`
}

type SyncRequest struct {
	Items []MenuItem `json:"items"`
	Cat   []string   `json:"cat"`
}

type SyncResult struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

// TableQR is what a printed table code points the storefront at.
type TableQR struct {
	OutletID    string
	TableID     string
	OutletName  string
	TableNumber string
}
