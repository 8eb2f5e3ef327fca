package rowstore

import (
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const defaultMySQLPort = "3306"

type MySQLConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	// TLS enables transport encryption; it is off unless asked for.
	TLS bool
}

// DSN assembles the go-sql-driver/mysql data source name for the config.
func (c MySQLConfig) DSN() string {
	port := c.Port
	if port == "" {
		port = defaultMySQLPort
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, port)
	cfg.DBName = c.Database
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.ParseTime = true
	cfg.TLSConfig = "false"
	if c.TLS {
		cfg.TLSConfig = "true"
	}

	return cfg.FormatDSN()
}

func (c MySQLConfig) String() string {
	return fmt.Sprintf("%s@%s/%s", c.User, net.JoinHostPort(c.Host, c.Port), c.Database)
}

// ConnectMySQL opens a handle limited to one connection that is closed on
// release rather than kept idle.
func ConnectMySQL(config MySQLConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed opening database connection at %s: %w", config, err)
	}

	singleConnection(db)
	return db, nil
}

type PGConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	// Driver is "pgx" (default) or "postgres" for lib/pq.
	Driver string
}

func (c PGConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Database)
}

// ConnectPostgresql opens a Postgres handle. Registered templates run as
// written, but record inserts use the MySQL "INSERT ... SET" form and values
// are escaped with backslashes, so only hand-written statements without
// untrusted values are portable here.
func ConnectPostgresql(config PGConfig) (*sqlx.DB, error) {
	driver := config.Driver
	if driver == "" {
		driver = "pgx"
	}

	db, err := sqlx.Open(driver, config.DSN())
	if err != nil {
		return nil, err
	}

	singleConnection(db)
	return db, nil
}

// ConnectSqlite opens the sqlite database file at path. sqlite rejects the
// "INSERT ... SET" form used by record inserts and does not treat a backslash
// as an escape, so values written through templates must not contain quotes.
func ConnectSqlite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	singleConnection(db)
	return db, nil
}

func singleConnection(db *sqlx.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)
}
