package tests

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"
)

func qrPNG(t *testing.T, content string) []byte {
	t.Helper()
	data, err := qrcode.Encode(content, qrcode.Medium, 256)
	require.NoError(t, err)
	return data
}

func qrFrame(t *testing.T, content string) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(qrPNG(t, content)))
	require.NoError(t, err)
	return img
}

// hugePNG is a valid 1x1 PNG whose header claims width x height pixels.
func hugePNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	data := buf.Bytes()

	// IHDR: length at 8, type at 12, width and height at 16, CRC at 29
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func ptr[T any](v T) *T {
	return &v
}
