package service

import (
	"net/url"
	"strings"

	"foodie-storefront/menu-svc/internal/domain"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes storefront table links the storefront's QR
// resolver understands.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(table domain.TableQR) ([]byte, error) {
	if table.OutletID == "" || table.TableID == "" {
		return nil, ErrInvalidTable
	}
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.TableURL(table), qrcode.Medium, size)
}

func (g DefaultQRGenerator) TableURL(table domain.TableQR) string {
	query := url.Values{}
	query.Set("tableId", table.TableID)
	query.Set("outletId", table.OutletID)
	if table.OutletName != "" {
		query.Set("outletName", table.OutletName)
	}
	if table.TableNumber != "" {
		query.Set("tableNumber", table.TableNumber)
	}
	return strings.TrimRight(g.BaseURL, "/") + "/?" + query.Encode()
}
