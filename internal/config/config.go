package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// Company holds the identity constants stamped into every generated contract.
// It is loaded once and passed around as a value; nothing mutates it.
type Company struct {
	Name           string
	Address        string
	Phone          string
	RegistrationNo string
	Representative string
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	LogLevel  string
	LogFormat string

	Minio   Minio
	Company Company
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "pawnshop"),
		MySQLUser: getenv("MYSQL_USER", "pawnshop"),
		MySQLPass: getenv("MYSQL_PASS", "pawnshop"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		Minio: Minio{
			Endpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
			AccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getenv("MINIO_BUCKET", "pawnshop-documents"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
		Company: Company{
			Name:           getenv("COMPANY_NAME", "HD Pawnshop Co., Ltd."),
			Address:        getenv("COMPANY_ADDRESS", "12 Market Street"),
			Phone:          getenv("COMPANY_PHONE", "+84 28 0000 0000"),
			RegistrationNo: getenv("COMPANY_REG_NO", "0000000000"),
			Representative: getenv("COMPANY_REPRESENTATIVE", "Director"),
		},
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.Minio.Endpoint == "" || c.Minio.Bucket == "" {
		return errors.New("missing MinIO config (MINIO_ENDPOINT/MINIO_BUCKET)")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
