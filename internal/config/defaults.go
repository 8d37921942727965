package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("node_name", "auctiond")

	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "data/auctions")
	v.SetDefault("storage.compression", "lz4")
	v.SetDefault("storage.cache_size", 1024)

	v.SetDefault("audit.driver", "")
	v.SetDefault("audit.dsn", "")

	v.SetDefault("auction.custody_account", "custody")
	v.SetDefault("auction.payment_asset", "native")
}
