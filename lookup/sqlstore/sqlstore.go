/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sqlstore implements the LookupService on top of a SQL database.
//
// Supported drivers are sqlite (modernc.org/sqlite, the default), mysql and postgres.
// The expected schema is created by Migrate:
//
//	stroke_orders(glyph, variant, stroke_order)     -- manual stroke orders, variant -1 = none
//	decompositions(glyph, seq, decomposition)       -- IDS strings ordered by seq
//
// Lookups can be cached in memory for CacheTTL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/utils/cache"
	"github.com/rulego/strokeorder/utils/maps"
	"github.com/rulego/strokeorder/utils/str"
	_ "modernc.org/sqlite"
)

const (
	DriverSqlite   = "sqlite"
	DriverMysql    = "mysql"
	DriverPostgres = "postgres"
)

const (
	defaultStrokeOrderQuery   = "SELECT stroke_order FROM stroke_orders WHERE glyph = ? AND variant = ?"
	defaultDecompositionQuery = "SELECT decomposition FROM decompositions WHERE glyph = ? ORDER BY seq"

	strokeOrderPrefix   = "so:"
	decompositionPrefix = "dec:"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stroke_orders (
		glyph VARCHAR(16) NOT NULL,
		variant INTEGER NOT NULL,
		stroke_order VARCHAR(512) NOT NULL,
		PRIMARY KEY (glyph, variant)
	)`,
	`CREATE TABLE IF NOT EXISTS decompositions (
		glyph VARCHAR(16) NOT NULL,
		seq INTEGER NOT NULL,
		decomposition VARCHAR(255) NOT NULL,
		PRIMARY KEY (glyph, seq)
	)`,
}

// Config SQL查询服务配置
type Config struct {
	// DriverName 数据库驱动名称，sqlite、mysql或postgres
	DriverName string
	// Dsn 数据库连接配置，参考sql.Open参数
	Dsn string
	// PoolSize 连接池大小
	PoolSize int
	// CacheTTL caches lookups for the given duration, e.g. "5m". Empty disables the cache.
	CacheTTL string
	// StrokeOrderQuery takes (glyph, variant) and returns one stroke_order column.
	StrokeOrderQuery string
	// DecompositionQuery takes (glyph) and returns decomposition rows in priority order.
	DecompositionQuery string
}

// Store is a SQL backed LookupService.
type Store struct {
	Config Config
	db     *sql.DB
	cache  types.Cache
}

var _ types.LookupService = (*Store)(nil)

// New creates a store from a configuration map, see Config for the keys.
func New(configuration types.Configuration) (*Store, error) {
	var c Config
	if err := maps.Map2Struct(configuration, &c); err != nil {
		return nil, err
	}
	return Open(c)
}

// Open opens the database and verifies the connection.
func Open(c Config) (*Store, error) {
	if c.DriverName == "" {
		c.DriverName = DriverSqlite
	}
	if strings.TrimSpace(c.Dsn) == "" {
		return nil, errors.New("dsn can not be empty")
	}
	if c.StrokeOrderQuery == "" {
		c.StrokeOrderQuery = defaultStrokeOrderQuery
	}
	if c.DecompositionQuery == "" {
		c.DecompositionQuery = defaultDecompositionQuery
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return nil, fmt.Errorf("invalid cacheTTL: %w", err)
		}
	}
	c.StrokeOrderQuery = str.ConvertDollarPlaceholder(c.StrokeOrderQuery, c.DriverName)
	c.DecompositionQuery = str.ConvertDollarPlaceholder(c.DecompositionQuery, c.DriverName)

	db, err := sql.Open(c.DriverName, c.Dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", c.DriverName, err)
	}
	if c.PoolSize > 0 {
		db.SetMaxOpenConns(c.PoolSize)
		db.SetMaxIdleConns(c.PoolSize)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", c.DriverName, err)
	}
	s := &Store{Config: c, db: db}
	if c.CacheTTL != "" {
		s.cache = cache.NewMemoryCache(0)
	}
	return s, nil
}

// SetCache replaces the lookup cache, e.g. with one shared between stores. Entries are kept
// for Config.CacheTTL; nil disables caching.
func (s *Store) SetCache(c types.Cache) *Store {
	s.cache = c
	return s
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if gc, ok := s.cache.(interface{ StopGC() }); ok {
		gc.StopGC()
	}
	return s.db.Close()
}

// Migrate creates the tables used by the default queries.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) GetManualStrokeOrder(ctx context.Context, glyph string, variant int) (types.StrokeOrder, error) {
	key := strokeOrderPrefix + glyph + "/" + strconv.Itoa(variant)
	if v, ok := s.cached(key); ok {
		return v.(types.StrokeOrder), nil
	}
	var order string
	err := s.db.QueryRowContext(ctx, s.Config.StrokeOrderQuery, glyph, variant).Scan(&order)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	s.store(key, types.StrokeOrder(order))
	return types.StrokeOrder(order), nil
}

func (s *Store) GetDecompositions(ctx context.Context, glyph string) ([]string, error) {
	key := decompositionPrefix + glyph
	if v, ok := s.cached(key); ok {
		return append([]string(nil), v.([]string)...), nil
	}
	rows, err := s.db.QueryContext(ctx, s.Config.DecompositionQuery, glyph)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []string
	for rows.Next() {
		var decomposition string
		if err := rows.Scan(&decomposition); err != nil {
			return nil, err
		}
		result = append(result, decomposition)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.store(key, append([]string(nil), result...))
	return result, nil
}

// PutStrokeOrder records a manual stroke order, replacing any previous one.
func (s *Store) PutStrokeOrder(ctx context.Context, glyph string, variant int, order types.StrokeOrder) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM stroke_orders WHERE glyph = ? AND variant = ?"), glyph, variant); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, s.rebind("INSERT INTO stroke_orders (glyph, variant, stroke_order) VALUES (?, ?, ?)"), glyph, variant, string(order))
		return err
	}, strokeOrderPrefix+glyph+"/")
}

// PutDecompositions replaces the decompositions of glyph, keeping their order.
func (s *Store) PutDecompositions(ctx context.Context, glyph string, decompositions ...string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM decompositions WHERE glyph = ?"), glyph); err != nil {
			return err
		}
		for i, d := range decompositions {
			if _, err := tx.ExecContext(ctx, s.rebind("INSERT INTO decompositions (glyph, seq, decomposition) VALUES (?, ?, ?)"), glyph, i, d); err != nil {
				return err
			}
		}
		return nil
	}, decompositionPrefix+glyph)
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error, invalidate string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.DeleteByPrefix(invalidate)
	}
	return nil
}

func (s *Store) rebind(query string) string {
	return str.ConvertDollarPlaceholder(query, s.Config.DriverName)
}

func (s *Store) cached(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.GetOk(key)
}

func (s *Store) store(key string, value interface{}) {
	if s.cache != nil {
		_ = s.cache.Set(key, value, s.Config.CacheTTL)
	}
}
