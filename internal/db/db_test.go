package db

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-analytics-service/internal/config"
)

func TestRunMigrationsExecutesEveryStatement(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database, err := Open(NewSnowflakeDialector("", sqlDB), zerolog.Nop())
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("CREATE SEQUENCE IF NOT EXISTS portfolio_id_seq")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for _, table := range []string{"portfolios", "portfolio_aircraft", "saved_searches", "saved_search_run_reports"} {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, RunMigrations(context.Background(), database, zerolog.Nop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database, err := Open(NewSnowflakeDialector("", sqlDB), zerolog.Nop())
	require.NoError(t, err)

	mock.ExpectExec("CREATE SEQUENCE").WillReturnError(assert.AnError)

	err = RunMigrations(context.Background(), database, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 1 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnowflakeDialectorUsesPositionalBinds(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database, err := Open(NewSnowflakeDialector("", sqlDB), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "snowflake", database.Dialector.Name())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM portfolios WHERE id = ? AND user_id = ?")).
		WithArgs(7, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Narrowbodies"))

	var name string
	err = database.Raw("SELECT name FROM portfolios WHERE id = @id AND user_id = @userId",
		map[string]interface{}{"id": 7, "userId": "user-1"}).Scan(&name).Error
	require.NoError(t, err)
	assert.Equal(t, "Narrowbodies", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnowflakeDSNWithPassword(t *testing.T) {
	dsn, err := SnowflakeDSN(config.SnowflakeConfig{
		Account:   "acme-eu1",
		User:      "svc_fleet",
		Password:  "secret",
		Database:  "FLEET",
		Schema:    "ANALYTICS",
		Warehouse: "REPORTING_WH",
	})
	require.NoError(t, err)
	assert.Contains(t, dsn, "svc_fleet")
	assert.Contains(t, dsn, "acme-eu1")
	assert.Contains(t, dsn, "warehouse=REPORTING_WH")
}

func TestSnowflakeDSNWithKeyPair(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rsa_key.p8")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))

	dsn, err := SnowflakeDSN(config.SnowflakeConfig{
		Account:        "acme-eu1",
		User:           "svc_fleet",
		PrivateKeyPath: path,
		Database:       "FLEET",
	})
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(dsn), "authenticator=snowflake_jwt")
}

func TestLoadPrivateKeyRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsa_key.p8")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0o600))

	_, err := loadPrivateKey(path)
	assert.Error(t, err)

	_, err = loadPrivateKey(filepath.Join(t.TempDir(), "missing.p8"))
	assert.Error(t, err)
}
