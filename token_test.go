package mediagate_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("gateway-test-secret")

// rawToken signs an arbitrary payload body, letting tests exercise payload
// shapes SignToken would never produce.
func rawToken(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(payload)) + "." + enc.EncodeToString(mac.Sum(nil))
}

func TestVerifier_Verify_RoundTrip(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	tests := []struct {
		name     string
		claims   mediagate.Claims
		key      string
		wantMode mediagate.Mode
	}{
		{
			name:     "public token",
			claims:   mediagate.Claims{Key: "sets/abc/photo.jpg", Mode: mediagate.ModePublic},
			key:      "sets/abc/photo.jpg",
			wantMode: mediagate.ModePublic,
		},
		{
			name:     "private token",
			claims:   mediagate.Claims{Key: "dm/42/voice.m4a", Mode: mediagate.ModePrivate},
			key:      "dm/42/voice.m4a",
			wantMode: mediagate.ModePrivate,
		},
		{
			name:     "mode absent defaults to private",
			claims:   mediagate.Claims{Key: "avatars/u1.png"},
			key:      "avatars/u1.png",
			wantMode: mediagate.ModePrivate,
		},
		{
			name:     "future expiry honored",
			claims:   mediagate.Claims{Key: "clips/c9.mp4", Mode: mediagate.ModePublic, ExpiresAt: time.Now().Add(time.Hour).Unix()},
			key:      "clips/c9.mp4",
			wantMode: mediagate.ModePublic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := mediagate.SignToken(testSecret, tt.claims)
			assert.NoError(t, err)

			grant, err := verifier.Verify(tt.key, token)
			assert.NoError(t, err)
			assert.Equal(t, tt.key, grant.Key)
			assert.Equal(t, tt.wantMode, grant.Mode)
		})
	}
}

func TestVerifier_Verify_SignatureBitFlip(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	token, err := mediagate.SignToken(testSecret, mediagate.Claims{Key: "sets/abc/photo.jpg"})
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 2)

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	assert.NoError(t, err)

	// Flip a single bit in every byte position of the signature; all must fail.
	for i := range sig {
		tampered := make([]byte, len(sig))
		copy(tampered, sig)
		tampered[i] ^= 0x01

		bad := parts[0] + "." + base64.RawURLEncoding.EncodeToString(tampered)
		_, err := verifier.Verify("sets/abc/photo.jpg", bad)
		assert.ErrorIs(t, err, mediagate.ErrForbidden, "flipped byte %d", i)
	}
}

func TestVerifier_Verify_KeyBinding(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	token, err := mediagate.SignToken(testSecret, mediagate.Claims{Key: "sets/abc/photo.jpg"})
	assert.NoError(t, err)

	// Signature is valid, key is not the one bound into the payload.
	_, err = verifier.Verify("sets/abc/other.jpg", token)
	assert.ErrorIs(t, err, mediagate.ErrForbidden)
}

func TestVerifier_Verify_LeadingSlashStripped(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	token := rawToken(testSecret, `{"k":"/sets/abc/photo.jpg","m":"pub"}`)

	grant, err := verifier.Verify("sets/abc/photo.jpg", token)
	assert.NoError(t, err)
	assert.Equal(t, mediagate.ModePublic, grant.Mode)
}

func TestVerifier_Verify_Expiry(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)
	now := time.Now().Unix()

	expired, err := mediagate.SignToken(testSecret, mediagate.Claims{Key: "clips/c9.mp4", ExpiresAt: now - 1})
	assert.NoError(t, err)

	_, err = verifier.Verify("clips/c9.mp4", expired)
	assert.ErrorIs(t, err, mediagate.ErrExpired)
	assert.NotErrorIs(t, err, mediagate.ErrForbidden)

	fresh, err := mediagate.SignToken(testSecret, mediagate.Claims{Key: "clips/c9.mp4", ExpiresAt: now + 3600})
	assert.NoError(t, err)

	_, err = verifier.Verify("clips/c9.mp4", fresh)
	assert.NoError(t, err)
}

func TestVerifier_Verify_MalformedTokens(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dot", "abcdef"},
		{"too many segments", "a.b.c"},
		{"bad payload encoding", "!!!.c2ln"},
		{"bad signature encoding", "cGF5bG9hZA.***"},
		{"valid encoding wrong signature", "cGF5bG9hZA.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify("sets/abc/photo.jpg", tt.token)
			assert.ErrorIs(t, err, mediagate.ErrForbidden)
		})
	}
}

func TestVerifier_Verify_InvalidPayloadJSON(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	// Correctly signed, but the payload is not JSON.
	token := rawToken(testSecret, "this is not json")

	_, err := verifier.Verify("sets/abc/photo.jpg", token)
	assert.ErrorIs(t, err, mediagate.ErrForbidden)
}

func TestVerifier_Verify_UnrecognizedModeFailsClosed(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	token := rawToken(testSecret, `{"k":"sets/abc/photo.jpg","m":"world-readable"}`)

	grant, err := verifier.Verify("sets/abc/photo.jpg", token)
	assert.NoError(t, err)
	assert.Equal(t, mediagate.ModePrivate, grant.Mode)
}

func TestVerifier_Verify_NonNumericExpiryIgnored(t *testing.T) {
	verifier := mediagate.NewVerifier(testSecret)

	token := rawToken(testSecret, `{"k":"sets/abc/photo.jpg","e":"tomorrow"}`)

	// Non-numeric e means no expiry enforced; the signature covers the field.
	grant, err := verifier.Verify("sets/abc/photo.jpg", token)
	assert.NoError(t, err)
	assert.Equal(t, mediagate.ModePrivate, grant.Mode)
}

func TestVerifier_Verify_NoSecret(t *testing.T) {
	verifier := mediagate.NewVerifier(nil)
	assert.False(t, verifier.Configured())

	token, err := mediagate.SignToken(testSecret, mediagate.Claims{Key: "sets/abc/photo.jpg"})
	assert.NoError(t, err)

	_, err = verifier.Verify("sets/abc/photo.jpg", token)
	assert.ErrorIs(t, err, mediagate.ErrNotConfigured)
}

func TestSignToken_EmptyKey(t *testing.T) {
	_, err := mediagate.SignToken(testSecret, mediagate.Claims{})
	assert.ErrorIs(t, err, mediagate.ErrInvalidInput)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, mediagate.ModePublic, mediagate.ParseMode("pub"))
	assert.Equal(t, mediagate.ModePrivate, mediagate.ParseMode("priv"))
	assert.Equal(t, mediagate.ModePrivate, mediagate.ParseMode(""))
	assert.Equal(t, mediagate.ModePrivate, mediagate.ParseMode("PUB"))
	assert.Equal(t, mediagate.ModePrivate, mediagate.ParseMode("public"))
}
