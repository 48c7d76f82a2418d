package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/binplot/binplot/config"
	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/logging"
)

var opts struct {
	ConfigFilePath string `short:"c" long:"config-path" description:"Config path" env:"CONFIG_FILE_PATH" required:"true"`
	DBPass         string `long:"db-pass" description:"DB password, overrides the config" env:"DB_PASSWORD"`
}

// binplot-migrate creates or updates the tables and exits.
func main() {
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	cfg := config.ParseConfigFromFile(opts.ConfigFilePath)
	if cfg == nil {
		panic("failed to get configuration")
	}
	cfg.DBConfig.Validate()
	cfg.LogConfig.Validate()
	logging.InitLogger(&cfg.LogConfig)

	gormDB := config.InitDBWithConfig(&cfg.DBConfig, opts.DBPass)
	db.AutoMigrateDB(gormDB)
	logging.Logger.Infof("migrated %s database", cfg.DBConfig.Dialect)
}
