package config

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendLevelDB  = "leveldb"
	BackendMemory   = "memory"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

type Gateway struct {
	Address   string
	Hash      string
	PublicKey string
}

// Configured reports whether any gateway value was supplied.
func (g Gateway) Configured() bool {
	return g.Address != "" || g.Hash != "" || g.PublicKey != ""
}

func (g Gateway) PublicKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimPrefix(g.PublicKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid gateway public key: %w", err)
	}
	return key, nil
}

type Config struct {
	HTTPAddr        string
	StorageBackend  string
	LevelDBPath     string
	Postgres        Postgres
	NTPServer       string
	NTPSyncInterval time.Duration
	Gateway         Gateway
}

// Load reads .env (if present) and parses args with environment defaults.
func Load(name string, args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.HTTPAddr, "addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.StorageBackend, "storage", envOr("STORAGE_BACKEND", BackendPostgres), "Storage backend (postgres, leveldb, memory)")
	fs.StringVar(&cfg.LevelDBPath, "leveldb-path", envOr("LEVELDB_PATH", "data/ledger"), "LevelDB directory")
	fs.StringVar(&cfg.Postgres.Host, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	fs.StringVar(&cfg.Postgres.Port, "db-port", envOr("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.Postgres.User, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	fs.StringVar(&cfg.Postgres.Password, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	fs.StringVar(&cfg.Postgres.DB, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	fs.StringVar(&cfg.NTPServer, "ntp-server", os.Getenv("NTP_SERVER"), "NTP server used to correct the clock")
	fs.DurationVar(&cfg.NTPSyncInterval, "ntp-interval", time.Minute, "NTP resync interval")
	fs.StringVar(&cfg.Gateway.Address, "gateway-address", os.Getenv("GATEWAY_ADDRESS"), "Gateway address")
	fs.StringVar(&cfg.Gateway.Hash, "gateway-hash", os.Getenv("GATEWAY_HASH"), "Gateway code hash")
	fs.StringVar(&cfg.Gateway.PublicKey, "gateway-public-key", os.Getenv("GATEWAY_PUBLIC_KEY"), "Gateway public key (hex)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch cfg.StorageBackend {
	case BackendPostgres, BackendLevelDB, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
