package env

import "os"

// Prefix namespaces every variable this service reads.
const Prefix = "STOREFRONT_"

// Get returns the prefixed variable, then the bare one, then fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
