package logger

import (
	"go.uber.org/zap"
)

// NewLogger production seviyesinde bir zap logger oluşturur.
// APP_ENV=development ise okunabilir konsol çıktısı kullanılır.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
