package config

import "os"

// Store backend selectors.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	StoreKind   string
	PostgresDSN string
}

// FromEnv builds a Server config from environment variables so main stays
// lean.
func FromEnv() Server {
	addr := os.Getenv("ESTATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	storeKind := os.Getenv("ESTATE_STORE")
	if storeKind == "" {
		storeKind = StoreMemory
	}

	return Server{
		Addr:        addr,
		StoreKind:   storeKind,
		PostgresDSN: os.Getenv("ESTATE_POSTGRES_DSN"),
	}
}
