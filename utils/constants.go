package utils

import "fotura/config"

// IsProduction reports whether the server runs with ENV=production.
func IsProduction() bool {
	return config.IsProduction()
}

// DateLayout is the wire/storage format for booking dates.
const DateLayout = "2006-01-02"
