package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/binplot/binplot/cache"
)

type Config struct {
	LogConfig     LogConfig     `json:"log_config"`
	DBConfig      DBConfig      `json:"db_config"`
	ServerConfig  ServerConfig  `json:"server_config"`
	StorageConfig StorageConfig `json:"storage_config"`
	CacheConfig   CacheConfig   `json:"cache_config"`
	MetricsConfig MetricsConfig `json:"metrics_config"`
}

func (cfg *Config) Validate() {
	cfg.LogConfig.Validate()
	cfg.DBConfig.Validate()
	cfg.StorageConfig.Validate()
}

type ServerConfig struct {
	Address  string `json:"address"`   // Address is the listen address of the http api
	MaxConns int    `json:"max_conns"` // MaxConns caps concurrently accepted connections
}

func (c *ServerConfig) GetAddress() string {
	if c.Address != "" {
		return c.Address
	}
	return DefaultServerAddress
}

func (c *ServerConfig) GetMaxConns() int {
	if c.MaxConns > 0 {
		return c.MaxConns
	}
	return DefaultMaxConns
}

// StorageConfig tells the upload intake where bin data files live. MediaRoot
// and UploadRoot form the prefix of every stored path.
type StorageConfig struct {
	Backend    string `json:"backend"`     // local or s3
	MediaRoot  string `json:"media_root"`  // MediaRoot is the local directory (or key prefix for s3) of all media
	UploadRoot string `json:"upload_root"` // UploadRoot is the sub directory of uploaded bin data
	S3Bucket   string `json:"s3_bucket"`
	S3Region   string `json:"s3_region"`
	S3Endpoint string `json:"s3_endpoint"`
}

func (cfg *StorageConfig) GetUploadRoot() string {
	if cfg.UploadRoot != "" {
		return cfg.UploadRoot
	}
	return DefaultUploadRoot
}

func (cfg *StorageConfig) Validate() {
	switch cfg.Backend {
	case StorageBackendLocal, "":
		if cfg.MediaRoot == "" {
			panic("media_root should not be empty for local storage")
		}
	case StorageBackendS3:
		if cfg.S3Bucket == "" || cfg.S3Region == "" {
			panic("s3 storage config is not correct, missing bucket and/or region")
		}
	default:
		panic(fmt.Sprintf("only %s and %s storage supported", StorageBackendLocal, StorageBackendS3))
	}
}

type CacheConfig struct {
	CacheType string `json:"cache_type"`
	CacheSize uint64 `json:"cache_size"`
}

func (c *CacheConfig) GetCacheSize() uint64 {
	if c.CacheSize != 0 {
		return c.CacheSize
	}
	return cache.DefaultCacheSize
}

type MetricsConfig struct {
	Enable  bool   `json:"enable"`
	Address string `json:"address"`
}

type DBConfig struct {
	Dialect       string `json:"dialect"`
	KeyType       string `json:"key_type"`
	AWSRegion     string `json:"aws_region"`
	AWSSecretName string `json:"aws_secret_name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Url           string `json:"url"`
	MaxIdleConns  int    `json:"max_idle_conns"`
	MaxOpenConns  int    `json:"max_open_conns"`
}

func (cfg *DBConfig) Validate() {
	if cfg.Dialect != DBDialectMysql && cfg.Dialect != DBDialectSqlite3 {
		panic(fmt.Sprintf("only %s and %s supported", DBDialectMysql, DBDialectSqlite3))
	}
	if cfg.Dialect == DBDialectMysql && (cfg.Username == "" || cfg.Url == "") {
		panic("db config is not correct, missing username and/or url")
	}
	if cfg.MaxIdleConns == 0 || cfg.MaxOpenConns == 0 {
		panic("db connections is not correct")
	}
}

type LogConfig struct {
	Level                        string `json:"level"`
	Filename                     string `json:"filename"`
	MaxFileSizeInMB              int    `json:"max_file_size_in_mb"`
	MaxBackupsOfLogFiles         int    `json:"max_backups_of_log_files"`
	MaxAgeToRetainLogFilesInDays int    `json:"max_age_to_retain_log_files_in_days"`
	UseConsoleLogger             bool   `json:"use_console_logger"`
	UseFileLogger                bool   `json:"use_file_logger"`
	Compress                     bool   `json:"compress"`
}

func (cfg *LogConfig) Validate() {
	if cfg.UseFileLogger {
		if cfg.Filename == "" {
			panic("filename should not be empty if use file logger")
		}
		if cfg.MaxFileSizeInMB <= 0 {
			panic("max_file_size_in_mb should be larger than 0 if use file logger")
		}
		if cfg.MaxBackupsOfLogFiles <= 0 {
			panic("max_backups_off_log_files should be larger than 0 if use file logger")
		}
	}
}

func ParseConfigFromJson(content string) *Config {
	var config Config
	if err := json.Unmarshal([]byte(content), &config); err != nil {
		panic(err)
	}
	return &config
}

func ParseConfigFromFile(filePath string) *Config {
	bz, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}

	var config Config
	if err := json.Unmarshal(bz, &config); err != nil {
		panic(err)
	}
	return &config
}
