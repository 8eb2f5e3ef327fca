package rowstore

import (
	"github.com/jjeffery/kv"
	"github.com/spf13/pflag"
)

// DefaultSettingKeys are the setting names read by ConfigFromSettings:
// server, database name, user name and password, in that order.
var DefaultSettingKeys = []string{"DBServer", "DBName", "DBUsername", "DBPassword"}

// Decrypter turns a stored password into clear text.
type Decrypter func(ciphertext string) (string, error)

// ConfigFromSettings builds a MySQLConfig from a settings map. keys names
// the server, database, user and password settings; DefaultSettingKeys is
// used when none are given. A nil decrypt leaves the password as stored.
func ConfigFromSettings(settings map[string]string, decrypt Decrypter, keys ...string) (MySQLConfig, error) {
	var cfg MySQLConfig
	if len(keys) == 0 {
		keys = DefaultSettingKeys
	}

	if len(keys) != 4 {
		return cfg, kv.NewError("incorrect number of setting keys").With("want", 4, "got", len(keys))
	}

	vals := make([]string, len(keys))
	for i, key := range keys {
		v, ok := settings[key]
		if !ok {
			return cfg, kv.NewError("missing database setting").With("key", key)
		}
		vals[i] = v
	}

	pwd := vals[3]
	if decrypt != nil {
		var err error
		if pwd, err = decrypt(pwd); err != nil {
			return cfg, kv.Wrap(err, "cannot decrypt database password").With("key", keys[3])
		}
	}

	return MySQLConfig{
		Host:     vals[0],
		Database: vals[1],
		User:     vals[2],
		Password: pwd,
	}, nil
}

// RegisterFlags binds the config fields to command line flags on fs.
func (c *MySQLConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Host, "db-host", c.Host, "database server host")
	fs.StringVar(&c.Port, "db-port", defaultMySQLPort, "database server port")
	fs.StringVarP(&c.Database, "db-name", "d", c.Database, "database name")
	fs.StringVarP(&c.User, "db-user", "u", c.User, "database user")
	fs.StringVarP(&c.Password, "db-password", "p", c.Password, "database password")
	fs.BoolVar(&c.TLS, "db-tls", c.TLS, "encrypt the database connection")
}
