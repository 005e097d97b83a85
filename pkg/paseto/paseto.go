package paseto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/o1egl/paseto"

	"Presensi-QR-Karyawan/models"
	util "Presensi-QR-Karyawan/pkg/utils"
)

const footer = "presensi-qr"

// PasetoMaker menerbitkan token sesi yang membungkus kredensial Attendance API.
type PasetoMaker struct {
	paseto       *paseto.V2
	symmetricKey []byte
	ttl          time.Duration
}

func NewPasetoMaker(secretBase64 string, ttl time.Duration) (*PasetoMaker, error) {
	key, err := util.DecodeBase64Key(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PASETO_SECRET: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET must be exactly 32 bytes after Base64 decoding, got %d bytes", len(key))
	}
	return &PasetoMaker{paseto: paseto.NewV2(), symmetricKey: key, ttl: ttl}, nil
}

// GenerateToken seals the upstream credential together with the user's
// identity. Every call starts a new session id.
func (m *PasetoMaker) GenerateToken(user models.User, upstreamToken string) (string, *models.Claims, error) {
	now := time.Now()
	claims := &models.Claims{
		SessionID:     uuid.NewString(),
		UserID:        user.ID,
		Name:          user.Name,
		Role:          user.Role,
		UpstreamToken: upstreamToken,
		ExpiresAt:     now.Add(m.ttl),
	}

	token := paseto.JSONToken{
		Jti:        claims.SessionID,
		Subject:    user.ID,
		IssuedAt:   now,
		Expiration: claims.ExpiresAt,
		NotBefore:  now,
	}
	token.Set("name", user.Name)
	token.Set("role", user.Role)
	token.Set("upstream_token", upstreamToken)

	encrypted, err := m.paseto.Encrypt(m.symmetricKey, token, footer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encrypt paseto token: %w", err)
	}
	return encrypted, claims, nil
}

func (m *PasetoMaker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var gotFooter string

	if err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &gotFooter); err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}
	if gotFooter != footer {
		return nil, fmt.Errorf("unexpected paseto footer %q", gotFooter)
	}
	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims := &models.Claims{
		SessionID:     token.Jti,
		UserID:        token.Subject,
		Name:          token.Get("name"),
		Role:          token.Get("role"),
		UpstreamToken: token.Get("upstream_token"),
		ExpiresAt:     token.Expiration,
	}
	if claims.SessionID == "" || claims.UpstreamToken == "" {
		return nil, fmt.Errorf("token sesi tidak lengkap")
	}
	return claims, nil
}
