package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateCheckoutQR(t *testing.T) {
	t.Parallel()

	t.Run("produces a decodable PNG of the configured size", func(t *testing.T) {
		t.Parallel()

		svc := NewQRCodeService(&config.Config{
			QRCode: &config.QRCodeConfig{Enabled: true, Size: 128, ErrorCorrectionLevel: "high"},
		})

		data, err := svc.GenerateCheckoutQR("https://pay.example/cs_123")
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
		assert.Equal(t, 128, img.Bounds().Dy())
	})

	t.Run("defaults apply without configuration", func(t *testing.T) {
		t.Parallel()

		svc := NewQRCodeService(nil)

		data, err := svc.GenerateCheckoutQR("https://pay.example/cs_123")
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()

		svc := NewQRCodeService(nil)

		_, err := svc.GenerateCheckoutQR("")
		require.Error(t, err)
	})
}
