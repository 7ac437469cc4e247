package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string  `envconfig:"PORT" default:"8080"`
	AWSRegion        string  `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	StoreTableName   string  `envconfig:"STORE_TABLE_NAME" default:""` // empty = in-memory stores
	KafkaBrokers     string  `envconfig:"KAFKA_BROKERS" default:""`    // empty = events disabled
	CatalogBaseURL   string  `envconfig:"CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	CurrencyRate     float64 `envconfig:"CURRENCY_RATE" default:"280"`
	JWTSecret        string  `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	SessionTTLHours  int     `envconfig:"SESSION_TTL_HOURS" default:"168"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"info"`
	DynamoDBEndpoint string  `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local endpoint
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
