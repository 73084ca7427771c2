package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// NewSessionToken returns an opaque, unforgeable session token. The token is
// only meaningful as a sessions-table lookup key.
func NewSessionToken() string {
	return uuid.NewString() + uuid.NewString()
}

// TicketClaims is the signed intermediate issued after an admin's password
// check. The session itself is only created once the channel-delivered code
// is verified against this ticket.
type TicketClaims struct {
	PromoterID string `json:"pid"`
	jwt.RegisteredClaims
}

func GenerateLoginTicket(secret, promoterID string, ttl time.Duration) (string, error) {
	claims := TicketClaims{
		PromoterID: promoterID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseLoginTicket(secret, tokenString string) (*TicketClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TicketClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid login ticket")
	}
	return claims, nil
}
