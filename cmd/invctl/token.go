package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenName string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an HS256 access token signed with JWT_SECRET",
	Long: `Mints a token carrying the claims the API expects from the identity
provider. Meant for local development and smoke tests.`,
	RunE: func(*cobra.Command, []string) error {
		tok, err := mintToken(cfg.JWTSecret, tokenUser, tokenName, tokenRole, tokenTTL, time.Now())
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "username (required)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "display name shown on outbound mails")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "user", "role claim, e.g. admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 8*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

func mintToken(secret, user, name, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	claims := middleware.JWTClaims{
		UserID:   uuid.NewString(),
		Username: user,
		Name:     name,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
