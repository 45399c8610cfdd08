package rediscache

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":        {},
		"short":        []byte("hi"),
		"compressible": bytes.Repeat([]byte("the same sentence over and over. "), 50),
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			enc, err := compress(payload)
			require.NoError(t, err)
			require.NotEmpty(t, enc, "encoded form always has a mode byte")

			dec, err := decompress(enc)
			require.NoError(t, err)
			assert.Equal(t, payload, dec)
		})
	}
}

func TestCompressPicksSmallerForm(t *testing.T) {
	compressible := bytes.Repeat([]byte("abcdefgh"), 200)

	enc, err := compress(compressible)
	require.NoError(t, err)
	assert.Equal(t, modeZlib, enc[0])
	assert.Less(t, len(enc), len(compressible))

	// random data doesn't compress, so the original is stored
	incompressible := make([]byte, 256)
	_, err = rand.Read(incompressible)
	require.NoError(t, err)

	enc, err = compress(incompressible)
	require.NoError(t, err)
	assert.Equal(t, modeUncompressed, enc[0])
	assert.Equal(t, incompressible, enc[1:])
}

func TestDecompressUnknownModePassthrough(t *testing.T) {
	payload := []byte{42, 0xde, 0xad}

	dec, err := decompress(payload)
	require.NoError(t, err)
	assert.Equal(t, payload, dec)
}

func TestDecompressCorruptBody(t *testing.T) {
	_, err := decompress([]byte{modeZlib, 0x00, 0x01, 0x02})
	assert.Error(t, err)
}
