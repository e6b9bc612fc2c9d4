package api

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStreamPayload(t *testing.T) {
	// "?>" forces '+' and '/' in the standard alphabet.
	wrapped := []byte(`{"onboardingData":{"companyName":"Acme?>"}}`)
	bare := []byte(`{"companyName":"Acme?>"}`)

	tests := []struct {
		name    string
		encoded string
	}{
		{"std padded wrapped", base64.StdEncoding.EncodeToString(wrapped)},
		{"std raw wrapped", base64.RawStdEncoding.EncodeToString(wrapped)},
		{"url padded bare", base64.URLEncoding.EncodeToString(bare)},
		{"url raw bare", base64.RawURLEncoding.EncodeToString(bare)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decodeStreamPayload(tt.encoded)
			require.NoError(t, err)
			assert.Equal(t, "Acme?>", raw["companyName"])
		})
	}
}

func TestDecodeStreamPayload_Errors(t *testing.T) {
	_, err := decodeStreamPayload("")
	assert.ErrorIs(t, err, errEmptyPayload)

	_, err = decodeStreamPayload("not base64 at all!")
	assert.Error(t, err)

	_, err = decodeStreamPayload(base64.StdEncoding.EncodeToString([]byte(`[1,2]`)))
	assert.Error(t, err)
}
