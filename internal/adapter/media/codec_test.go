package media

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46, 0x00, 0x01}

func TestDecodePayload(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString(jpegHeader)

	t.Run("empty payload decodes to nil", func(t *testing.T) {
		blob, err := DecodePayload("", "image/jpeg")
		require.NoError(t, err)
		assert.Nil(t, blob)
	})

	t.Run("data url declares the mime type", func(t *testing.T) {
		blob, err := DecodePayload("data:image/webp;base64,"+raw, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "image/webp", blob.MIMEType)
		assert.Equal(t, jpegHeader, blob.Data)
	})

	t.Run("bare base64 is sniffed", func(t *testing.T) {
		blob, err := DecodePayload(raw, "application/octet-stream")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", blob.MIMEType)
	})

	t.Run("unpadded base64 is accepted", func(t *testing.T) {
		unpadded := base64.RawStdEncoding.EncodeToString([]byte{0x01, 0x02})
		blob, err := DecodePayload(unpadded, "video/mp4")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, blob.Data)
	})

	t.Run("unsniffable bytes fall back to the declared default", func(t *testing.T) {
		blob, err := DecodePayload(base64.StdEncoding.EncodeToString(make([]byte, 4)), "video/mp4")
		require.NoError(t, err)
		assert.Equal(t, "video/mp4", blob.MIMEType)
	})

	t.Run("garbage payload is rejected", func(t *testing.T) {
		_, err := DecodePayload("not!!base64@@", "image/jpeg")
		assert.Error(t, err)
	})

	t.Run("data url without separator is rejected", func(t *testing.T) {
		_, err := DecodePayload("data:image/png;base64", "image/jpeg")
		assert.Error(t, err)
	})
}
