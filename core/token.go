package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecodedAppCheckToken is the verification result returned by the service.
// AppID is the token subject.
type DecodedAppCheckToken struct {
	Issuer    string
	Subject   string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	TokenID   string
	AppID     string
	Claims    map[string]any
}

type verificationClaims struct {
	jwt.RegisteredClaims
}

var registeredClaimKeys = []string{"iss", "sub", "aud", "exp", "nbf", "iat", "jti"}

func decodeVerificationResult(codec JSONCodec, payload []byte) (DecodedAppCheckToken, error) {
	raw := map[string]any{}
	if err := codec.Decode(payload, &raw); err != nil {
		return DecodedAppCheckToken{}, err
	}
	claims := verificationClaims{}
	if err := codec.Decode(payload, &claims); err != nil {
		return DecodedAppCheckToken{}, err
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return DecodedAppCheckToken{}, fmt.Errorf("core: verification result missing sub claim")
	}

	for _, key := range registeredClaimKeys {
		delete(raw, key)
	}
	result := DecodedAppCheckToken{
		Issuer:   strings.TrimSpace(claims.Issuer),
		Subject:  subject,
		Audience: append([]string(nil), claims.Audience...),
		TokenID:  strings.TrimSpace(claims.ID),
		AppID:    subject,
		Claims:   raw,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.UTC()
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.UTC()
	}
	return result, nil
}
