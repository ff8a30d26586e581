package database

import "github.com/pkg/errors"

var (
	// ErrUnknownDriver, desteklenmeyen bir driver adı verildiğinde döner.
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrInvalidConfig, bağlantı ayarları eksik veya hatalı olduğunda döner.
	ErrInvalidConfig = errors.New("invalid database config")
)
