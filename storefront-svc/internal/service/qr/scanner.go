package qr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"foodie-storefront/storefront-svc/internal/domain"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rs/zerolog/log"
)

const DefaultMaxAttempts = 3

var (
	ErrNoCode            = errors.New("no QR code found")
	ErrCameraUnavailable = errors.New("camera unavailable")
)

// Decoder finds QR text in a single frame. ok is false when the frame holds
// no readable code.
type Decoder interface {
	Decode(frame image.Image) (text string, ok bool, err error)
}

// FrameSource is a stream of frames. Next returns io.EOF when the stream
// ends.
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

type ZXingDecoder struct {
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{
		reader: qrcode.NewQRCodeReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

func (d *ZXingDecoder) Decode(frame image.Image) (string, bool, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(frame)
	if err != nil {
		return "", false, err
	}
	result, err := d.reader.Decode(bmp, d.hints)
	if err != nil {
		var notFound gozxing.ReaderException
		if errors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return result.GetText(), true, nil
}

// SliceFrames replays a fixed set of frames, such as uploaded stills.
type SliceFrames struct {
	frames []image.Image
	next   int
	closed bool
}

func NewSliceFrames(frames ...image.Image) *SliceFrames {
	return &SliceFrames{frames: frames}
}

func (s *SliceFrames) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, ErrCameraUnavailable
	}
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.next]
	s.next++
	return frame, nil
}

func (s *SliceFrames) Close() error {
	s.closed = true
	return nil
}

func (s *SliceFrames) Closed() bool {
	return s.closed
}

type Scanner struct {
	Decoder     Decoder
	MaxAttempts int
}

func NewScanner(decoder Decoder) *Scanner {
	return &Scanner{Decoder: decoder, MaxAttempts: DefaultMaxAttempts}
}

// Scan reads frames until one resolves. The source is closed on every path.
// Codes that fail to resolve count as attempts; after MaxAttempts of them the
// last resolution error is returned.
func (s *Scanner) Scan(ctx context.Context, src FrameSource) (domain.QRCodeData, error) {
	if src == nil {
		return domain.QRCodeData{}, ErrCameraUnavailable
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to release frame source")
		}
	}()

	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return domain.QRCodeData{}, err
		}

		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			if lastErr != nil {
				return domain.QRCodeData{}, lastErr
			}
			return domain.QRCodeData{}, ErrNoCode
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.QRCodeData{}, ctxErr
			}
			return domain.QRCodeData{}, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
		}

		text, ok, err := s.Decoder.Decode(frame)
		if err != nil {
			log.Debug().Err(err).Msg("frame decode failed")
			continue
		}
		if !ok {
			continue
		}

		data, err := Resolve(text)
		if err == nil {
			return data, nil
		}
		attempts++
		lastErr = err
		log.Debug().Err(err).Int("attempt", attempts).Msg("scanned code did not resolve")
		if attempts >= maxAttempts {
			return domain.QRCodeData{}, lastErr
		}
	}
}
