package config

const (
	FlagConfigPath         = "config-path"
	FlagConfigType         = "config-type"
	FlagConfigAwsRegion    = "aws-region"
	FlagConfigAwsSecretKey = "aws-secret-key"
	FlagConfigDbPass       = "db-pass"

	ConfigType     = "CONFIG_TYPE"
	ConfigFilePath = "CONFIG_FILE_PATH"
	ConfigDBPass   = "DB_PASSWORD"

	AWSConfig   = "aws"
	LocalConfig = "local"

	KeyTypeLocalPrivateKey = "local_private_key"
	KeyTypeAWSPrivateKey   = "aws_private_key"

	DBDialectMysql   = "mysql"
	DBDialectSqlite3 = "sqlite3"

	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"

	DefaultUploadRoot = "bindata"

	DefaultServerAddress = "0.0.0.0:8080"
	DefaultMaxConns      = 256
)
