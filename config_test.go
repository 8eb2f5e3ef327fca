package rowstore

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLConfigDSN(t *testing.T) {
	cfg := MySQLConfig{Host: "db.local", Database: "chetch", User: "app", Password: "s3cret"}

	parsed, err := mysql.ParseDSN(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.local:3306", parsed.Addr)
	assert.Equal(t, "chetch", parsed.DBName)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "false", parsed.TLSConfig)
	assert.True(t, parsed.ParseTime)
}

func TestConfigFromSettings(t *testing.T) {
	settings := map[string]string{
		"DBServer":   "localhost",
		"DBName":     "main",
		"LogDBName":  "logs",
		"DBUsername": "root",
		"DBPassword": "olleh",
	}
	reverse := func(s string) (string, error) {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r), nil
	}

	cfg, err := ConfigFromSettings(settings, reverse)
	require.NoError(t, err)
	assert.Equal(t, MySQLConfig{Host: "localhost", Database: "main", User: "root", Password: "hello"}, cfg)

	cfg, err = ConfigFromSettings(settings, nil, "DBServer", "LogDBName", "DBUsername", "DBPassword")
	require.NoError(t, err)
	assert.Equal(t, "logs", cfg.Database)
	assert.Equal(t, "olleh", cfg.Password)
}

func TestConfigFromSettingsErrors(t *testing.T) {
	settings := map[string]string{"DBServer": "h"}

	_, err := ConfigFromSettings(settings, nil, "a", "b")
	assert.Error(t, err)

	_, err = ConfigFromSettings(settings, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing database setting"), err.Error())

	full := map[string]string{"DBServer": "h", "DBName": "d", "DBUsername": "u", "DBPassword": "p"}
	_, err = ConfigFromSettings(full, func(string) (string, error) { return "", errors.New("bad key") })
	assert.Error(t, err)
}

func TestRegisterFlags(t *testing.T) {
	var cfg MySQLConfig
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--db-host", "h", "-d", "db", "-u", "me", "-p", "pw"}))
	assert.Equal(t, MySQLConfig{Host: "h", Port: "3306", Database: "db", User: "me", Password: "pw"}, cfg)
}
