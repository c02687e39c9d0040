package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/yeshua-high/school-site-api/pkg/config"
)

// Pools bundles the unprivileged read pool with the privileged write pool.
// The writer must only ever be handed to repositories whose mutating routes
// sit behind the session guard.
type Pools struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// NewPools connects both PostgreSQL pools.
func NewPools(cfg config.DatabaseConfig) (*Pools, error) {
	read, err := open(cfg, cfg.User, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("connect read pool: %w", err)
	}

	if cfg.WriteUser == cfg.User {
		return &Pools{Read: read, Write: read}, nil
	}

	write, err := open(cfg, cfg.WriteUser, cfg.WritePassword)
	if err != nil {
		_ = read.Close()
		return nil, fmt.Errorf("connect write pool: %w", err)
	}

	return &Pools{Read: read, Write: write}, nil
}

// Close releases both pools.
func (p *Pools) Close() error {
	if p == nil {
		return nil
	}
	err := p.Read.Close()
	if p.Write != p.Read {
		if werr := p.Write.Close(); err == nil {
			err = werr
		}
	}
	return err
}

func open(cfg config.DatabaseConfig, user, password string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		user,
		password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
