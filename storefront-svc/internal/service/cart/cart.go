// Package cart prices menu items with add-ons and keeps one line per
// (item, add-on set).
package cart

import (
	"fmt"
	"slices"
	"strings"

	"foodie-storefront/storefront-svc/internal/domain"
)

type Item struct {
	ID         string   `json:"id"`
	MenuItemID string   `json:"menuItemId"`
	Name       string   `json:"name"`
	Price      int64    `json:"price"`
	Quantity   int      `json:"quantity"`
	Image      string   `json:"image,omitempty"`
	AddOns     []string `json:"addOns,omitempty"`
}

type Cart struct {
	Items []Item `json:"items"`
}

// Key identifies a line: the item id, a dash, then the sorted add-on ids
// joined by dashes. An item without add-ons keys as "<id>-".
func Key(itemID string, addOnIDs []string) string {
	return itemID + "-" + strings.Join(normalize(addOnIDs), "-")
}

// UnitPrice is the base price plus every selected add-on found on the item.
// Unknown add-on ids add nothing.
func UnitPrice(item domain.MenuItem, addOnIDs []string) int64 {
	price := item.Price
	for _, id := range normalize(addOnIDs) {
		for _, addOn := range item.AddOns {
			if addOn.ID == id {
				price += addOn.Price
				break
			}
		}
	}
	return price
}

func normalize(addOnIDs []string) []string {
	ids := slices.Clone(addOnIDs)
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Add puts one unit of item with the given add-ons in the cart, merging
// with an existing line.
func (c *Cart) Add(item domain.MenuItem, addOnIDs []string) Item {
	key := Key(item.ID, addOnIDs)
	if i := c.index(key); i >= 0 {
		c.Items[i].Quantity++
		return c.Items[i]
	}

	line := Item{
		ID:         key,
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      UnitPrice(item, addOnIDs),
		Quantity:   1,
		Image:      item.Image,
		AddOns:     normalize(addOnIDs),
	}
	c.Items = append(c.Items, line)
	return line
}

func (c *Cart) Increment(key string) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.Items[i].Quantity++
	return true
}

// SetQuantity removes the line when n <= 0. Unknown keys are ignored.
func (c *Cart) SetQuantity(key string, n int) {
	i := c.index(key)
	if i < 0 {
		return
	}
	if n <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
	c.Items[i].Quantity = n
}

func (c *Cart) Decrement(key string) {
	i := c.index(key)
	if i < 0 {
		return
	}
	c.SetQuantity(key, c.Items[i].Quantity-1)
}

func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// ItemQuantity sums every add-on variant of a menu item.
func (c *Cart) ItemQuantity(menuItemID string) int {
	total := 0
	for _, it := range c.Items {
		if it.MenuItemID == menuItemID {
			total += it.Quantity
		}
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Reset() {
	c.Items = nil
}

func (c *Cart) index(key string) int {
	for i := range c.Items {
		if c.Items[i].ID == key {
			return i
		}
	}
	return -1
}

// FormatPrice renders paise as rupees, e.g. 45000 -> ₹450.00.
func FormatPrice(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}
