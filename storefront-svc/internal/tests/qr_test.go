package tests

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"testing"

	"foodie-storefront/storefront-svc/internal/domain"
	"foodie-storefront/storefront-svc/internal/mocks"
	"foodie-storefront/storefront-svc/internal/service/qr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    domain.QRCodeData
		wantErr error
	}{
		{
			name: "table url",
			text: "https://x/?tableId=T1&outletId=O1",
			want: domain.QRCodeData{TableID: "T1", OutletID: "O1"},
		},
		{
			name: "table url with name and number",
			text: "https://foodie.example/?tableId=T7&outletId=200&outletName=Civil%20Lines&tableNumber=7",
			want: domain.QRCodeData{TableID: "T7", OutletID: "200", OutletName: "Civil Lines", TableNumber: "7"},
		},
		{
			name:    "table url missing outlet",
			text:    "https://x/?tableId=T1",
			wantErr: qr.ErrMissingFields,
		},
		{
			name:    "table url with path and no outlet",
			text:    "https://foodie.example/menu/table?tableId=T1",
			wantErr: qr.ErrMissingFields,
		},
		{
			name:    "table url with path and empty outlet",
			text:    "https://foodie.example/app/web/?tableId=T1&outletId=",
			wantErr: qr.ErrMissingFields,
		},
		{
			name:    "bare path with table query",
			text:    "/starters/201?outletId=201",
			wantErr: qr.ErrInvalidPayload,
		},
		{
			name: "json with numeric ids",
			text: `{"tableId":"T3","outletId":201,"tableNumber":3}`,
			want: domain.QRCodeData{TableID: "T3", OutletID: "201", TableNumber: "3"},
		},
		{
			name:    "json missing table",
			text:    `{"outletId":"201"}`,
			wantErr: qr.ErrMissingFields,
		},
		{
			name:    "broken json",
			text:    `{"tableId":`,
			wantErr: qr.ErrInvalidPayload,
		},
		{
			name: "outlet path",
			text: "/starters/201",
			want: domain.QRCodeData{FoodCategory: "starters", OutletID: "201"},
		},
		{
			name: "outlet path url",
			text: "https://foodie.example/MAIN%20COURSE/305",
			want: domain.QRCodeData{FoodCategory: "MAIN COURSE", OutletID: "305"},
		},
		{
			name:    "plain text",
			text:    "hello",
			wantErr: qr.ErrInvalidPayload,
		},
		{
			name:    "empty",
			text:    "   ",
			wantErr: qr.ErrInvalidPayload,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := qr.Resolve(testCase.text)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Equal(t, domain.QRCodeData{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseOutletPathPayload_NeedsTwoSegments(t *testing.T) {
	_, err := qr.ParseOutletPathPayload("/starters")

	assert.ErrorIs(t, err, qr.ErrInvalidPayload)
}

func TestMenuRedirect(t *testing.T) {
	bengaluru := domain.Location{Lat: 12.97, Lon: 77.59, City: "Bengaluru", State: "Karnataka"}

	tests := []struct {
		name string
		data domain.QRCodeData
		loc  domain.Location
		want string
	}{
		{
			name: "table without location",
			data: domain.QRCodeData{TableID: "T1", OutletID: "200", OutletName: "Cafe One", TableNumber: "5"},
			want: "/?outletId=200&tableId=T1&outletName=Cafe+One&tableNumber=5",
		},
		{
			name: "table with location",
			data: domain.QRCodeData{TableID: "T1", OutletID: "200"},
			loc:  bengaluru,
			want: "/?outletId=200&tableId=T1&lat=12.97&lon=77.59&city=Bengaluru&state=Karnataka",
		},
		{
			name: "outlet path",
			data: domain.QRCodeData{FoodCategory: "MAIN COURSE", OutletID: "200"},
			want: "/MAIN%20COURSE/200",
		},
		{
			name: "outlet path with coordinates only",
			data: domain.QRCodeData{FoodCategory: "desserts", OutletID: "201"},
			loc:  domain.Location{Lat: 28.6, Lon: 77.2},
			want: "/desserts/201?lat=28.6&lon=77.2",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, qr.MenuRedirect(testCase.data, testCase.loc))
		})
	}
}

type failingFrames struct {
	closed bool
}

func (f *failingFrames) Next(ctx context.Context) (image.Image, error) {
	return nil, errors.New("device busy")
}

func (f *failingFrames) Close() error {
	f.closed = true
	return nil
}

func blankFrame() image.Image {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestScanner_Scan(t *testing.T) {
	t.Run("skips frames until a code resolves", func(t *testing.T) {
		decoder := mocks.NewDecoder(t)
		decoder.On("Decode", mock.Anything).Return("", false, nil).Once()
		decoder.On("Decode", mock.Anything).Return("", false, errors.New("blurred")).Once()
		decoder.On("Decode", mock.Anything).Return("https://x/?tableId=T1&outletId=O1", true, nil).Once()
		src := qr.NewSliceFrames(blankFrame(), blankFrame(), blankFrame(), blankFrame())

		data, err := qr.NewScanner(decoder).Scan(testContext(t), src)

		require.NoError(t, err)
		assert.Equal(t, domain.QRCodeData{TableID: "T1", OutletID: "O1"}, data)
		assert.True(t, src.Closed())
	})

	t.Run("stops after max invalid codes", func(t *testing.T) {
		decoder := mocks.NewDecoder(t)
		decoder.On("Decode", mock.Anything).Return("not a table", true, nil).Times(3)
		src := qr.NewSliceFrames(blankFrame(), blankFrame(), blankFrame(), blankFrame(), blankFrame())

		_, err := qr.NewScanner(decoder).Scan(testContext(t), src)

		assert.ErrorIs(t, err, qr.ErrInvalidPayload)
		assert.True(t, src.Closed())
	})

	t.Run("reports last resolution error at end of stream", func(t *testing.T) {
		decoder := mocks.NewDecoder(t)
		decoder.On("Decode", mock.Anything).Return("https://x/?tableId=T1", true, nil).Once()
		src := qr.NewSliceFrames(blankFrame())

		_, err := qr.NewScanner(decoder).Scan(testContext(t), src)

		assert.ErrorIs(t, err, qr.ErrMissingFields)
		assert.True(t, src.Closed())
	})

	t.Run("no code in any frame", func(t *testing.T) {
		decoder := mocks.NewDecoder(t)
		decoder.On("Decode", mock.Anything).Return("", false, nil).Twice()
		src := qr.NewSliceFrames(blankFrame(), blankFrame())

		_, err := qr.NewScanner(decoder).Scan(testContext(t), src)

		assert.ErrorIs(t, err, qr.ErrNoCode)
		assert.True(t, src.Closed())
	})

	t.Run("source failure", func(t *testing.T) {
		src := &failingFrames{}

		_, err := qr.NewScanner(mocks.NewDecoder(t)).Scan(testContext(t), src)

		assert.ErrorIs(t, err, qr.ErrCameraUnavailable)
		assert.True(t, src.closed)
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := qr.NewScanner(mocks.NewDecoder(t)).Scan(testContext(t), nil)

		assert.ErrorIs(t, err, qr.ErrCameraUnavailable)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()
		src := qr.NewSliceFrames(blankFrame())

		_, err := qr.NewScanner(mocks.NewDecoder(t)).Scan(ctx, src)

		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, src.Closed())
	})
}

func TestZXingDecoder(t *testing.T) {
	t.Run("reads a generated code", func(t *testing.T) {
		frame := qrFrame(t, "https://foodie.example/?tableId=T9&outletId=201")

		data, err := qr.NewScanner(qr.NewZXingDecoder()).Scan(testContext(t), qr.NewSliceFrames(frame))

		require.NoError(t, err)
		assert.Equal(t, domain.QRCodeData{TableID: "T9", OutletID: "201"}, data)
	})

	t.Run("blank frame has no code", func(t *testing.T) {
		text, ok, err := qr.NewZXingDecoder().Decode(blankFrame())

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, text)
	})
}
