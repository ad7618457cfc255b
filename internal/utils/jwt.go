package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/expense-tracker/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateResetTicket creates a signed HMAC-SHA256 reset ticket for userID.
//
// The ticket includes the following claims:
//   - Issuer    (iss): identifies the service that issued the ticket
//   - Subject   (sub): the user id
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): expiresAt, normally the expiry of the verified OTP
//   - otp            : the verified code
//
// Returns an error if issuer, userID or signKey is empty.
func GenerateResetTicket(issuer, userID string, otp int, expiresAt time.Time, signKey string) (models.ResetTicket, error) {
	if issuer == "" || userID == "" || signKey == "" {
		return models.ResetTicket{}, errors.New("invalid params for generating reset ticket")
	}

	ticket := models.ResetTicket{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		OTP: otp,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ticket)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.ResetTicket{}, fmt.Errorf("error occurred during signing reset ticket: %w", err)
	}
	ticket.SignedString = signed

	return ticket, nil
}

// ValidateAndParseResetTicket validates the given ticket string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification with HS256 only
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
func ValidateAndParseResetTicket(ticketString, signKey, issuer string) (models.ResetTicket, error) {
	var ticket models.ResetTicket
	_, err := jwt.ParseWithClaims(ticketString, &ticket, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.ResetTicket{}, fmt.Errorf("error occurred validating and parsing reset ticket: %w", err)
	}

	if ticket.Subject == "" {
		return models.ResetTicket{}, errors.New("empty subject error")
	}
	ticket.SignedString = ticketString

	return ticket, nil
}
