package config

import "fmt"

// Validate checks cross-field constraints that viper cannot express.
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "pebble", "leveldb", "memory":
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", cfg.Storage.Backend)
	}
	switch cfg.Storage.Compression {
	case "", "none", "lz4":
	default:
		return fmt.Errorf("storage.compression: unknown compressor %q", cfg.Storage.Compression)
	}
	if cfg.Storage.Backend != "memory" && cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path: required for backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.CacheSize < 0 {
		return fmt.Errorf("storage.cache_size: must not be negative")
	}

	switch cfg.Audit.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("audit.driver: unknown driver %q", cfg.Audit.Driver)
	}
	if cfg.Audit.Driver != "" && cfg.Audit.DSN == "" {
		return fmt.Errorf("audit.dsn: required when audit.driver is set")
	}

	if cfg.Auction.CustodyAccount == "" {
		return fmt.Errorf("auction.custody_account: must not be empty")
	}
	if cfg.Auction.PaymentAsset == "" {
		return fmt.Errorf("auction.payment_asset: must not be empty")
	}
	return nil
}
