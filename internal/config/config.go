// Package config loads auctiond configuration from defaults, an optional
// TOML file, and AUCTIOND_-prefixed environment overrides.
package config

// Config is the full auctiond configuration tree.
type Config struct {
	NodeName string `mapstructure:"node_name"`

	Storage StorageConfig `mapstructure:"storage"`
	Audit   AuditConfig   `mapstructure:"audit"`
	Auction AuctionConfig `mapstructure:"auction"`
}

// StorageConfig selects and tunes the record table backend.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	Path        string `mapstructure:"path"`
	Compression string `mapstructure:"compression"`
	CacheSize   int    `mapstructure:"cache_size"`
}

// AuditConfig configures the relational outcome archive. An empty driver
// disables archiving.
type AuditConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AuctionConfig carries the custody wiring of the registry.
type AuctionConfig struct {
	CustodyAccount string `mapstructure:"custody_account"`
	PaymentAsset   string `mapstructure:"payment_asset"`
}
