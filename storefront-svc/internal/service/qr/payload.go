// Package qr turns scanned QR text into outlet/table identifiers and the
// storefront route they lead to.
package qr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"foodie-storefront/storefront-svc/internal/domain"
)

var (
	ErrInvalidPayload = errors.New("invalid QR code format")
	ErrMissingFields  = errors.New("QR code is missing required fields")
)

// ParseTablePayload accepts either an absolute URL carrying tableId and
// outletId query parameters or a JSON object with the same fields.
func ParseTablePayload(text string) (domain.QRCodeData, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "http") {
		u, err := url.Parse(text)
		if err != nil || !u.IsAbs() {
			return domain.QRCodeData{}, fmt.Errorf("%w: not a valid URL", ErrInvalidPayload)
		}
		q := u.Query()
		return tableData(q.Get("tableId"), q.Get("outletId"), q.Get("outletName"), q.Get("tableNumber"))
	}

	var raw struct {
		TableID     flexString `json:"tableId"`
		OutletID    flexString `json:"outletId"`
		OutletName  flexString `json:"outletName"`
		TableNumber flexString `json:"tableNumber"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.QRCodeData{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return tableData(string(raw.TableID), string(raw.OutletID), string(raw.OutletName), string(raw.TableNumber))
}

func tableData(tableID, outletID, outletName, tableNumber string) (domain.QRCodeData, error) {
	tableID, outletID = strings.TrimSpace(tableID), strings.TrimSpace(outletID)
	if tableID == "" || outletID == "" {
		return domain.QRCodeData{}, ErrMissingFields
	}
	return domain.QRCodeData{
		TableID:     tableID,
		OutletID:    outletID,
		OutletName:  outletName,
		TableNumber: tableNumber,
	}, nil
}

// ParseOutletPathPayload reads /{category}/{outletId} from a URL or a bare
// path.
func ParseOutletPathPayload(text string) (domain.QRCodeData, error) {
	text = strings.TrimSpace(text)
	path := text
	if strings.HasPrefix(text, "http") {
		u, err := url.Parse(text)
		if err != nil || !u.IsAbs() {
			return domain.QRCodeData{}, fmt.Errorf("%w: not a valid URL", ErrInvalidPayload)
		}
		path = u.Path
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		unescaped, err := url.PathUnescape(s)
		if err != nil {
			return domain.QRCodeData{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		segments = append(segments, unescaped)
	}
	if len(segments) < 2 {
		return domain.QRCodeData{}, fmt.Errorf("%w: expected /category/outlet path", ErrInvalidPayload)
	}
	return domain.QRCodeData{FoodCategory: segments[0], OutletID: segments[1]}, nil
}

// Resolve tries the table format first. Non-JSON payloads without table
// query parameters fall back to the outlet path format; the table error is
// reported when both fail.
func Resolve(text string) (domain.QRCodeData, error) {
	data, err := ParseTablePayload(text)
	if err == nil {
		return data, nil
	}
	if strings.HasPrefix(strings.TrimSpace(text), "{") || hasTableQuery(text) {
		return domain.QRCodeData{}, err
	}
	if pathData, pathErr := ParseOutletPathPayload(text); pathErr == nil {
		return pathData, nil
	}
	return domain.QRCodeData{}, err
}

func hasTableQuery(text string) bool {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	q := u.Query()
	return q.Has("tableId") || q.Has("outletId")
}

// MenuRedirect builds the storefront route for resolved data. Location
// parameters are appended only when known.
func MenuRedirect(data domain.QRCodeData, loc domain.Location) string {
	var q queryBuilder
	var path string
	if data.TableID == "" && data.FoodCategory != "" {
		path = "/" + url.PathEscape(data.FoodCategory) + "/" + url.PathEscape(data.OutletID)
	} else {
		path = "/"
		q.add("outletId", data.OutletID)
		q.add("tableId", data.TableID)
		q.add("outletName", data.OutletName)
		q.add("tableNumber", data.TableNumber)
	}

	if loc.HasCoordinates() {
		q.add("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
		q.add("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
		q.add("city", loc.City)
		q.add("state", loc.State)
	}
	return path + q.String()
}

// queryBuilder keeps insertion order, unlike url.Values.Encode.
type queryBuilder struct {
	buf bytes.Buffer
}

func (b *queryBuilder) add(key, value string) {
	if value == "" {
		return
	}
	if b.buf.Len() == 0 {
		b.buf.WriteByte('?')
	} else {
		b.buf.WriteByte('&')
	}
	b.buf.WriteString(url.QueryEscape(key))
	b.buf.WriteByte('=')
	b.buf.WriteString(url.QueryEscape(value))
}

func (b *queryBuilder) String() string {
	return b.buf.String()
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
