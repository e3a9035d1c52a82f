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

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"
)

const engineSectionPrefix = "engine."

// Config 服务配置，ini文件加载后再用环境变量覆盖
type Config struct {
	// Server http服务地址，为空时不启动服务
	Server string `ini:"server" env:"STROKEORDER_SERVER"`
	// LogFile 日志文件，为空时输出到标准输出
	LogFile string `ini:"log_file" env:"STROKEORDER_LOG_FILE"`
	// LogMaxSize 单个日志文件最大MB
	LogMaxSize int `ini:"log_max_size" env:"STROKEORDER_LOG_MAX_SIZE"`
	// LogMaxBackups 保留的旧日志文件数
	LogMaxBackups int `ini:"log_max_backups" env:"STROKEORDER_LOG_MAX_BACKUPS"`
	// Debug 是否打印每一步推导的调试日志
	Debug bool `ini:"debug" env:"STROKEORDER_DEBUG"`
	// DefaultEngine is used by requests that name no engine.
	DefaultEngine string `ini:"default_engine" env:"STROKEORDER_DEFAULT_ENGINE"`
	// AllowReload enables POST /api/v1/reload.
	AllowReload bool `ini:"allow_reload" env:"STROKEORDER_ALLOW_RELOAD"`
	// ReloadCron reloads every engine on a cron schedule, e.g. "0 */5 * * * *".
	ReloadCron string `ini:"reload_cron" env:"STROKEORDER_RELOAD_CRON"`
	// Workers evaluates candidate decompositions in parallel when greater than 0.
	Workers int `ini:"workers" env:"STROKEORDER_WORKERS"`
	// MaxDepth bounds component resolution.
	MaxDepth int `ini:"max_depth" env:"STROKEORDER_MAX_DEPTH"`
	// RulesFile and StrokeNamesFile configure the default engine when no [engine.*] section exists.
	RulesFile       string `ini:"rules_file" env:"STROKEORDER_RULES_FILE"`
	StrokeNamesFile string `ini:"stroke_names_file" env:"STROKEORDER_STROKE_NAMES_FILE"`
	Db              Db     `ini:"db"`
	// Engines is read from the [engine.<id>] sections.
	Engines []EngineConfig `ini:"-"`
}

// Db lookup database
type Db struct {
	DriverName string `ini:"driver_name" env:"STROKEORDER_DB_DRIVER"`
	Dsn        string `ini:"dsn" env:"STROKEORDER_DB_DSN"`
	PoolSize   int    `ini:"pool_size" env:"STROKEORDER_DB_POOL_SIZE"`
	CacheTTL   string `ini:"cache_ttl" env:"STROKEORDER_DB_CACHE_TTL"`
}

// EngineConfig is one [engine.<id>] section.
type EngineConfig struct {
	Id              string `ini:"-"`
	RulesFile       string `ini:"rules_file"`
	StrokeNamesFile string `ini:"stroke_names_file"`
}

// DefaultConfig 默认配置
var DefaultConfig = Config{
	LogMaxSize:    100,
	LogMaxBackups: 3,
	DefaultEngine: "default",
	RulesFile:     "./rules.txt",
	Db: Db{
		DriverName: "sqlite",
		Dsn:        "./strokeorder.db",
		PoolSize:   4,
	},
}

// LoadConfig reads the ini file, when given, over DefaultConfig and applies environment overrides.
func LoadConfig(file string) (Config, error) {
	c := DefaultConfig
	if file != "" {
		cfg, err := ini.Load(file)
		if err != nil {
			return c, err
		}
		if err := cfg.MapTo(&c); err != nil {
			return c, err
		}
		for _, section := range cfg.Sections() {
			if !strings.HasPrefix(section.Name(), engineSectionPrefix) {
				continue
			}
			var ec EngineConfig
			if err := section.MapTo(&ec); err != nil {
				return c, fmt.Errorf("section %s: %w", section.Name(), err)
			}
			ec.Id = strings.TrimPrefix(section.Name(), engineSectionPrefix)
			c.Engines = append(c.Engines, ec)
		}
	}
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	if len(c.Engines) == 0 {
		c.Engines = []EngineConfig{{Id: c.DefaultEngine, RulesFile: c.RulesFile, StrokeNamesFile: c.StrokeNamesFile}}
	}
	sort.Slice(c.Engines, func(i, j int) bool {
		return c.Engines[i].Id < c.Engines[j].Id
	})
	return c, nil
}
