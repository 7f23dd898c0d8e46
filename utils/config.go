package utils

import (
	"os"
	"strings"
)

// PlatformDepixAddress is the platform's token payout address. Deposits and
// withdrawals both snapshot it at creation time.
func PlatformDepixAddress() string {
	return strings.TrimSpace(os.Getenv("PLATFORM_DEPIX_ADDRESS"))
}

// AdminEmail returns the e-mail promoted to admin at registration, lowercased.
func AdminEmail() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
}

func Getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
