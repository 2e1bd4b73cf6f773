// Package foodieos is a small client for the external FoodieOS food-service
// API that owns outlet menus.
package foodieos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	getOutletFoodPath    = "/api/getOutletFood"
	updateOutletFoodPath = "/api/updateOutletFood"
)

var (
	ErrRequestFailed = errors.New("foodieos request failed")
	ErrNoItems       = errors.New("no food items available")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type OutletFoodRequest struct {
	Platform     string  `json:"platform"`
	Country      string  `json:"country"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	OutletID     int     `json:"outletid"`
	FoodCategory string  `json:"foodCategory"`
	Date         string  `json:"date"`
}

type outletFoodResponse struct {
	Status int `json:"status"`
	Output *struct {
		R []json.RawMessage `json:"r"`
	} `json:"output"`
}

// FoodList is the envelope updateOutletFood expects. R holds the items in
// FoodieOS field naming.
type FoodList struct {
	Cat []string `json:"cat"`
	R   any      `json:"r"`
}

type UpdateOutletFoodRequest struct {
	OutletID int      `json:"outletid"`
	FoodList FoodList `json:"foodList"`
}

type UpdateOutletFoodResponse struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

type Client struct {
	baseURL string
	client  HTTPClient
}

func NewClient(baseURL string, client HTTPClient) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// GetOutletFood returns the raw menu items of an outlet. Callers decode the
// items into their own model.
func (c *Client) GetOutletFood(ctx context.Context, req OutletFoodRequest) ([]json.RawMessage, error) {
	var body outletFoodResponse
	if err := c.post(ctx, getOutletFoodPath, req, &body); err != nil {
		return nil, err
	}
	if body.Status != http.StatusOK || body.Output == nil || body.Output.R == nil {
		return nil, ErrNoItems
	}
	return body.Output.R, nil
}

func (c *Client) UpdateOutletFood(ctx context.Context, req UpdateOutletFoodRequest) (*UpdateOutletFoodResponse, error) {
	var body UpdateOutletFoodResponse
	if err := c.post(ctx, updateOutletFoodPath, req, &body); err != nil {
		return nil, err
	}
	if body.Status != 0 && body.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream status %d: %s", ErrRequestFailed, body.Status, body.Message)
	}
	return &body, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	return nil
}
