// Package auth issues and verifies HS256 session tokens bound to a wallet.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the wallet the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	WalletAddress string `json:"wallet_address"`
}

func GenerateToken(walletAddress string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   walletAddress,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		WalletAddress: walletAddress,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetWalletFromToken validates tokenString and returns the wallet it is bound to.
// Expired tokens yield common.ErrTokenExpired; anything else invalid yields an
// error wrapping common.ErrInvalidToken.
func GetWalletFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.WalletAddress == "" {
		return "", common.ErrInvalidToken
	}

	return claims.WalletAddress, nil
}
