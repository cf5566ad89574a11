//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mysql

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

const defaultPort = "3306"

// ToDSN converts a mysql:// or mariadb:// URL into a driver DSN. Native
// DSNs are passed through. Either way parseTime is enabled and times are
// read in UTC.
func ToDSN(conn string) (string, error) {
	var cfg *driver.Config

	if strings.HasPrefix(conn, "mariadb://") || strings.HasPrefix(conn, "mysql://") {
		u, err := url.Parse(conn)
		if err != nil {
			return "", fmt.Errorf("parse connection url: %w", err)
		}

		cfg = driver.NewConfig()
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		if u.Port() == "" && u.Hostname() != "" {
			cfg.Addr = net.JoinHostPort(u.Hostname(), defaultPort)
		}
		cfg.DBName = strings.TrimPrefix(u.Path, "/")

		if cfg.User == "" || u.Hostname() == "" || cfg.DBName == "" {
			return "", fmt.Errorf("incomplete connection url: user, host and database are required")
		}
	} else {
		var err error
		cfg, err = driver.ParseDSN(conn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}
