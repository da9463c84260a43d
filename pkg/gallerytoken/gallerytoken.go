package gallerytoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Şifre doğrulandıktan sonra verilen galeri erişim token'ının süresi
const TokenExpiry = 24 * time.Hour

// Generate şifre korumalı bir etkinliğin galerisi için erişim token'ı üretir
func Generate(eventID string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"event_id": eventID,
		"exp":      time.Now().Add(TokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Validate token'ı doğrular ve hangi etkinlik için verildiğini döner
func Validate(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid gallery token")
	}

	eventID, ok := claims["event_id"].(string)
	if !ok || eventID == "" {
		return "", fmt.Errorf("invalid gallery token claims")
	}

	return eventID, nil
}
