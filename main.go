package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/binplot/binplot/cache"
	"github.com/binplot/binplot/config"
	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/logging"
	"github.com/binplot/binplot/metrics"
	"github.com/binplot/binplot/restapi"
	"github.com/binplot/binplot/service"
	"github.com/binplot/binplot/storage"
)

func initFlags() {
	flag.String(config.FlagConfigPath, "", "config file path")
	flag.String(config.FlagConfigType, "", "config type, local or aws")
	flag.String(config.FlagConfigAwsRegion, "", "aws region")
	flag.String(config.FlagConfigAwsSecretKey, "", "aws secret key")
	flag.String(config.FlagConfigDbPass, "", "binplot db password")

	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		panic(err)
	}
}

func printUsage() {
	fmt.Print("usage: ./binplot --config-type local --config-path configFile\n")
	fmt.Print("usage: ./binplot --config-type aws --aws-region awsRegin --aws-secret-key awsSecretKey\n")
}

func loadConfig() *config.Config {
	configType := viper.GetString(config.FlagConfigType)
	if configType == "" {
		configType = os.Getenv(config.ConfigType)
	}
	if configType == "" {
		configType = config.LocalConfig
	}
	switch configType {
	case config.AWSConfig:
		awsSecretKey := viper.GetString(config.FlagConfigAwsSecretKey)
		awsRegion := viper.GetString(config.FlagConfigAwsRegion)
		if awsSecretKey == "" || awsRegion == "" {
			return nil
		}
		configContent, err := config.GetSecret(awsSecretKey, awsRegion)
		if err != nil {
			fmt.Printf("get aws config error, err=%s", err.Error())
			return nil
		}
		return config.ParseConfigFromJson(configContent)
	case config.LocalConfig:
		configFilePath := viper.GetString(config.FlagConfigPath)
		if configFilePath == "" {
			configFilePath = os.Getenv(config.ConfigFilePath)
		}
		if configFilePath == "" {
			return nil
		}
		return config.ParseConfigFromFile(configFilePath)
	default:
		return nil
	}
}

func main() {
	initFlags()
	cfg := loadConfig()
	if cfg == nil {
		printUsage()
		return
	}
	cfg.Validate()
	logging.InitLogger(&cfg.LogConfig)

	password := viper.GetString(config.FlagConfigDbPass)
	if password == "" {
		password = os.Getenv(config.ConfigDBPass)
	}
	gormDB := config.InitDBWithConfig(&cfg.DBConfig, password)
	db.AutoMigrateDB(gormDB)
	binDao := db.NewBinSvcDB(gormDB)

	var cacheSvc cache.Cache
	var err error
	switch cfg.CacheConfig.CacheType {
	case "local", "":
		cacheSvc, err = cache.NewLocalCache(cfg.CacheConfig.GetCacheSize())
		if err != nil {
			panic(err)
		}
	default:
		panic("currently only local cache is support.")
	}

	store, err := storage.NewStore(&cfg.StorageConfig)
	if err != nil {
		panic(err)
	}

	binStructSvc := service.NewBinStructService(binDao, cacheSvc)
	binDataSvc := service.NewBinDataService(binDao, store, &cfg.StorageConfig)
	handler, err := restapi.ConfigureAPI(&restapi.Services{
		BinStruct: binStructSvc,
		BinData:   binDataSvc,
		Graph:     service.NewGraphService(binDao, binStructSvc, binDataSvc),
	})
	if err != nil {
		panic(err)
	}

	if cfg.MetricsConfig.Enable {
		metrics.NewMetrics(cfg.MetricsConfig.Address).Start()
	}

	server := restapi.NewServer(&cfg.ServerConfig, handler)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Logger.Errorf("failed to shutdown server, err=%s", err.Error())
		}
	}()
	if err := server.Serve(); err != nil {
		logging.Logger.Errorf("server stopped, err=%s", err.Error())
		os.Exit(1)
	}
}
