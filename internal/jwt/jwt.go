package jwt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "stackandsteal.server"

// Audience is the intended JWT audience
const Audience = "stackandsteal.client"

var secret []byte
var ttl = time.Hour * 12

// SeatClaims identifies a seat in a room
type SeatClaims struct {
	Room string `json:"room"`
	jwtgo.RegisteredClaims
}

// LoadKey will load the signing secret and token lifetime from the configuration
// Without a configured secret a random one is generated, tokens will not survive a restart.
// this method should only be called once.
func LoadKey() {
	cfg := config.Instance().JWT
	if cfg.TTL > 0 {
		ttl = cfg.TTL
	}

	if cfg.Secret != "" {
		secret = []byte(cfg.Secret)
		return
	}

	logrus.Warn("jwt.secret is not set, generating a random secret")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logrus.WithError(err).Fatal("could not generate a secret")
	}

	secret = b
}

// SetKey sets the signing secret
func SetKey(key []byte) {
	secret = key
}

// Sign will sign a JWT for the seat in the room
func Sign(roomID, seatID string) (string, error) {
	if secret == nil {
		panic("LoadKey() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, SeatClaims{
		Room: roomID,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience:  jwtgo.ClaimStrings{Audience},
			ID:        uuid.New().String(),
			IssuedAt:  jwtgo.NewNumericDate(now),
			ExpiresAt: jwtgo.NewNumericDate(now.Add(ttl)),
			Issuer:    Issuer,
			Subject:   seatID,
		},
	})

	return token.SignedString(secret)
}

// ValidSeat will validate a signed JWT and return the room and seat it was issued for
func ValidSeat(signedString string) (roomID string, seatID string, err error) {
	if secret == nil {
		panic("LoadKey() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &SeatClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		logrus.Warn("token claims were not valid. did not expect to reach this code")
		return "", "", errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*SeatClaims)
	if !ok {
		return "", "", fmt.Errorf("expected SeatClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, Audience) {
		return "", "", errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return "", "", errors.New("invalid issuer")
	}

	if claims.Room == "" || claims.Subject == "" {
		return "", "", errors.New("missing room or seat")
	}

	return claims.Room, claims.Subject, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
