package mediagate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Mode classifies verified media for cache-policy purposes. It never grants
// or denies access by itself.
type Mode string

const (
	// ModePublic marks content-addressed, immutable media safe for
	// aggressive shared caching.
	ModePublic Mode = "pub"
	// ModePrivate marks media that must never be cached by any
	// intermediary or browser disk cache.
	ModePrivate Mode = "priv"
)

// ParseMode maps a payload mode literal to a Mode. Anything other than the
// two recognized literals falls back to ModePrivate, the stricter policy.
func ParseMode(s string) Mode {
	if Mode(s) == ModePublic {
		return ModePublic
	}
	return ModePrivate
}

// Claims is the token payload as minted by the account service. Mode and
// ExpiresAt are optional; a zero ExpiresAt means the token never expires.
type Claims struct {
	Key       string `json:"k"`
	Mode      Mode   `json:"m,omitempty"`
	ExpiresAt int64  `json:"e,omitempty"`
}

// Grant is the result of successful token verification.
type Grant struct {
	Key  string
	Mode Mode
}

// tokenPayload is the lenient decode target for incoming payload JSON.
// Exp is deliberately untyped: a non-numeric e is treated as absent rather
// than rejected, since the signature already covers the field.
type tokenPayload struct {
	Key  string `json:"k"`
	Mode string `json:"m"`
	Exp  any    `json:"e"`
}

// DecodeToken splits a signed token into its raw payload and signature
// bytes. The token must consist of exactly two dot-separated base64url
// segments; padding is tolerated. No semantic validation happens here.
func DecodeToken(token string) (payload, sig []byte, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("malformed token: %w", ErrForbidden)
	}

	payload, err = decodeSegment(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("bad payload encoding: %w", ErrForbidden)
	}

	sig, err = decodeSegment(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("bad signature encoding: %w", ErrForbidden)
	}

	return payload, sig, nil
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// SignToken mints a token for the given claims. The production issuer lives
// in the account service; this mirrors its wire format for tests and the
// mint CLI command.
func SignToken(secret []byte, c Claims) (string, error) {
	if c.Key == "" {
		return "", fmt.Errorf("sign token: %w: key cannot be empty", ErrInvalidInput)
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sig := computeSignature(secret, payload)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(payload) + "." + enc.EncodeToString(sig), nil
}

func computeSignature(secret, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

// verifySignature compares the supplied signature against the expected
// HMAC-SHA256 digest. hmac.Equal is constant-time over the digest contents;
// differing lengths fail immediately, which leaks nothing secret.
func verifySignature(secret, payload, sig []byte) bool {
	return hmac.Equal(computeSignature(secret, payload), sig)
}

// Verifier checks signed media tokens against a shared secret. The secret
// is injected at construction and never mutated, so a single Verifier is
// safe for concurrent use.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret. An empty
// secret produces a fail-closed verifier that rejects every token with
// ErrNotConfigured.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Configured reports whether a signing secret is present.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// Verify authenticates a token against the requested object key.
//
// The pipeline is a sequence of hard gates: decode, signature check, JSON
// parse, key binding, mode defaulting, expiry. The signature is verified
// strictly before any payload field is interpreted, so forged JSON can
// never influence control flow. Failures return ErrForbidden except a
// valid-but-expired token, which returns ErrExpired so callers can prompt
// for a token refresh.
func (v *Verifier) Verify(requestedKey, token string) (Grant, error) {
	if !v.Configured() {
		return Grant{}, fmt.Errorf("verify token: %w", ErrNotConfigured)
	}

	payload, sig, err := DecodeToken(token)
	if err != nil {
		return Grant{}, fmt.Errorf("verify token: %w", err)
	}

	if !verifySignature(v.secret, payload, sig) {
		return Grant{}, fmt.Errorf("verify token: signature mismatch: %w", ErrForbidden)
	}

	var p tokenPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Grant{}, fmt.Errorf("verify token: invalid payload: %w", ErrForbidden)
	}

	key := strings.TrimLeft(p.Key, "/")
	if key != requestedKey {
		return Grant{}, fmt.Errorf("verify token: key mismatch: %w", ErrForbidden)
	}

	mode := ParseMode(p.Mode)

	if exp, ok := p.Exp.(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return Grant{}, fmt.Errorf("verify token: %w", ErrExpired)
		}
	}

	return Grant{Key: key, Mode: mode}, nil
}
