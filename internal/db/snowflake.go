package db

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"fleet-analytics-service/internal/config"
)

const (
	driverName      = "snowflake"
	applicationName = "fleet-analytics-service"
)

// snowflakeDialector reuses the postgres dialector for quoting and callbacks
// and switches bind variables to Snowflake's positional '?'.
type snowflakeDialector struct {
	postgres.Dialector
}

func NewSnowflakeDialector(dsn string, conn gorm.ConnPool) gorm.Dialector {
	return snowflakeDialector{
		Dialector: postgres.Dialector{Config: &postgres.Config{
			DriverName: driverName,
			DSN:        dsn,
			Conn:       conn,
		}},
	}
}

func (snowflakeDialector) Name() string {
	return driverName
}

func (snowflakeDialector) BindVarTo(writer clause.Writer, _ *gorm.Statement, _ interface{}) {
	writer.WriteByte('?')
}

func (snowflakeDialector) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, nil, `'`, vars...)
}

// upperCaseNamer matches the upper-cased column names Snowflake returns for
// unquoted identifiers.
type upperCaseNamer struct {
	schema.NamingStrategy
}

func (n upperCaseNamer) ColumnName(table, column string) string {
	return strings.ToUpper(n.NamingStrategy.ColumnName(table, column))
}

func SnowflakeDSN(cfg config.SnowflakeConfig) (string, error) {
	sfCfg := &sf.Config{
		Account:     cfg.Account,
		User:        cfg.User,
		Database:    cfg.Database,
		Schema:      cfg.Schema,
		Warehouse:   cfg.Warehouse,
		Role:        cfg.Role,
		Application: applicationName,
	}

	if cfg.PrivateKeyPath != "" {
		key, err := loadPrivateKey(cfg.PrivateKeyPath)
		if err != nil {
			return "", err
		}
		sfCfg.Authenticator = sf.AuthTypeJwt
		sfCfg.PrivateKey = key
	} else {
		sfCfg.Password = cfg.Password
	}

	dsn, err := sf.DSN(sfCfg)
	if err != nil {
		return "", fmt.Errorf("build snowflake dsn: %w", err)
	}
	return dsn, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("private key is not PEM encoded")
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not an RSA key")
		}
		return key, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}
