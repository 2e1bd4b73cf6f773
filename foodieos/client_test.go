package foodieos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetOutletFood(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantItems int
		wantErr   error
	}{
		{
			name:      "success",
			status:    http.StatusOK,
			body:      `{"status":200,"output":{"r":[{"id":"B1"},{"id":"B2"}]}}`,
			wantItems: 2,
		},
		{
			name:    "body status not ok",
			status:  http.StatusOK,
			body:    `{"status":404,"output":{"r":[]}}`,
			wantErr: ErrNoItems,
		},
		{
			name:    "missing output",
			status:  http.StatusOK,
			body:    `{"status":200}`,
			wantErr: ErrNoItems,
		},
		{
			name:    "http failure",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: ErrRequestFailed,
		},
		{
			name:    "garbage body",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: ErrRequestFailed,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var got OutletFoodRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/getOutletFood", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)
				json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(testCase.status)
				w.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := NewClient(server.URL+"/", server.Client())
			items, err := client.GetOutletFood(context.Background(), OutletFoodRequest{
				Platform: "web", Country: "India", OutletID: 200, FoodCategory: "BEVERAGES",
			})

			if testCase.wantErr != nil {
				assert.True(t, errors.Is(err, testCase.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, testCase.wantItems)
			assert.Equal(t, 200, got.OutletID)
			assert.Equal(t, "BEVERAGES", got.FoodCategory)
		})
	}
}

func TestClient_UpdateOutletFood(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/updateOutletFood", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"status":200,"message":"updated"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	resp, err := client.UpdateOutletFood(context.Background(), UpdateOutletFoodRequest{
		OutletID: 200,
		FoodList: FoodList{Cat: []string{"DESSERTS"}, R: []map[string]string{{"id": "D001"}}},
	})

	require.NoError(t, err)
	assert.Equal(t, "updated", resp.Message)
	assert.EqualValues(t, 200, got["outletid"])
	foodList := got["foodList"].(map[string]any)
	assert.Len(t, foodList["r"], 1)
	assert.Equal(t, []any{"DESSERTS"}, foodList["cat"])
}

func TestClient_UpdateOutletFoodUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":500,"message":"outlet locked"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.UpdateOutletFood(context.Background(), UpdateOutletFoodRequest{OutletID: 1})

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "outlet locked")
}
