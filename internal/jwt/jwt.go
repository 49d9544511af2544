package jwt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidIssuer is returned when the token was issued by someone else
var ErrInvalidIssuer = errors.New("invalid issuer")

// Signer signs and validates session tokens
// The subject of each token is the session UUID it grants access to
type Signer struct {
	secret []byte
	issuer string
}

// NewSigner returns a Signer that uses HS256
// If secret is empty, a random secret is generated and tokens will not survive a restart
func NewSigner(secret, issuer string) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}

		logrus.Warn("no jwt secret configured, using a random secret")
	}

	return &Signer{
		secret: key,
		issuer: issuer,
	}, nil
}

// Sign will sign a JWT for the session
func (s *Signer) Sign(sessionUUID string) (string, error) {
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   s.issuer,
		Subject:  sessionUUID,
	})

	return token.SignedString(s.secret)
}

// ValidSessionUUID will validate a signed JWT and return the session UUID
func (s *Signer) ValidSessionUUID(signedString string) (string, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return s.secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if claims.Issuer != s.issuer {
		return "", ErrInvalidIssuer
	}

	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}
