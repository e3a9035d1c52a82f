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

// Command strokeorder derives CJK stroke orders from a lookup database.
//
// One-shot usage:
//
//	strokeorder -c strokeorder.ini -char 林
//	strokeorder -c strokeorder.ini -ids "⿰木木,⿰木？"
//	strokeorder -c strokeorder.ini -import_orders orders.csv -import_decompositions ids.csv
//
// Without one-shot flags it serves the HTTP api on the configured server address.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rulego/strokeorder"
	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/endpoint/rest"
	"github.com/rulego/strokeorder/endpoint/schedule"
	"github.com/rulego/strokeorder/lookup/sqlstore"
	"github.com/rulego/strokeorder/provider"
	"github.com/rulego/strokeorder/utils/fs"
	"github.com/rulego/strokeorder/utils/pool"
	"github.com/rulego/strokeorder/utils/str"
	"gopkg.in/natefinch/lumberjack.v2"
)

const version = "1.0.0"

var (
	//是否是查询版本
	ver bool
	//配置文件
	configFile string
	// one-shot
	character            string
	ids                  string
	engineId             string
	importOrders         string
	importDecompositions string
)

func init() {
	flag.StringVar(&configFile, "c", "", "配置文件")
	flag.BoolVar(&ver, "v", false, "打印版本")
	flag.StringVar(&character, "char", "", "resolve a character through the lookup database, e.g. 林 or 木/1")
	flag.StringVar(&ids, "ids", "", "comma separated decompositions of one character")
	flag.StringVar(&engineId, "engine", "", "engine used by -char and -ids, default_engine when empty")
	flag.StringVar(&importOrders, "import_orders", "", "import glyph[/variant],order lines into the database")
	flag.StringVar(&importDecompositions, "import_decompositions", "", "import glyph,ids lines into the database")
}

func main() {
	flag.Parse()

	if ver {
		fmt.Printf("strokeorder v%s\n", version)
		os.Exit(0)
	}

	c, err := LoadConfig(configFile)
	if err != nil {
		log.Fatal("error:", err)
	}
	logger := initLogger(c)

	store, err := sqlstore.Open(sqlstore.Config{
		DriverName: c.Db.DriverName,
		Dsn:        c.Db.Dsn,
		PoolSize:   c.Db.PoolSize,
		CacheTTL:   c.Db.CacheTTL,
	})
	if err != nil {
		logger.Fatal("open lookup database error:", err)
	}
	defer store.Close()

	ctx := context.Background()
	if importOrders != "" || importDecompositions != "" {
		if err := importData(ctx, store, logger); err != nil {
			logger.Fatal("import error:", err)
		}
		return
	}

	engines, err := initEngines(c, store, logger)
	if err != nil {
		logger.Fatal("load engines error:", err)
	}

	if character != "" || ids != "" {
		code := oneShot(ctx, c, engines, os.Stdout)
		_ = store.Close()
		os.Exit(code)
	}
	serve(c, engines, logger)
}

// 初始化日志记录器
func initLogger(c Config) *log.Logger {
	if c.LogFile == "" {
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	return log.New(&lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		Compress:   true,
	}, "", log.LstdFlags)
}

func initEngines(c Config, lookup types.LookupService, logger *log.Logger) (*strokeorder.Engines, error) {
	opts := []types.Option{types.WithLogger(logger), types.WithMaxDepth(c.MaxDepth)}
	if c.Workers > 0 {
		wp := &pool.WorkerPool{MaxWorkersCount: c.Workers}
		wp.Start()
		opts = append(opts, types.WithPool(wp))
	}
	if c.Debug {
		opts = append(opts, types.WithOnDebug(func(requestId string, stage string, subject string, err error) {
			logger.Printf("requestId=%s,stage=%s,subject=%s,err=%v", requestId, stage, subject, err)
		}))
	}
	config := types.NewConfig(opts...)

	engines := &strokeorder.Engines{}
	for _, ec := range c.Engines {
		engineOpts := []strokeorder.EngineOption{strokeorder.WithConfig(config)}
		if ec.RulesFile != "" {
			engineOpts = append(engineOpts, strokeorder.WithRuleProvider(provider.File{Path: ec.RulesFile}))
		}
		if ec.StrokeNamesFile != "" {
			engineOpts = append(engineOpts, strokeorder.WithStrokeNameProvider(provider.File{Path: ec.StrokeNamesFile}))
		}
		if _, err := engines.New(ec.Id, lookup, engineOpts...); err != nil {
			return nil, fmt.Errorf("engine %s: %w", ec.Id, err)
		}
	}
	return engines, nil
}

// oneShot prints the result of -char or -ids and returns the process exit code.
func oneShot(ctx context.Context, c Config, engines *strokeorder.Engines, out io.Writer) int {
	id := engineId
	if id == "" {
		id = c.DefaultEngine
	}
	e, ok := engines.Get(id)
	if !ok {
		fmt.Fprintf(out, "engine %s not found\n", id)
		return 2
	}
	var order types.StrokeOrder
	var err error
	if character != "" {
		order, err = e.GetCharacterStrokeOrder(ctx, character)
	} else {
		decompositions := strings.Split(ids, ",")
		order, err = e.GetStrokeOrder(ctx, decompositions)
		if err == nil && order.IsEmpty() {
			for _, d := range decompositions {
				fmt.Fprintf(out, "%s: %s\n", d, e.GetStrokeOrderError(ctx, d))
			}
		}
	}
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return 1
	}
	if order.IsEmpty() {
		fmt.Fprintln(out, "not deducible")
		return 1
	}
	fmt.Fprintf(out, "%s\n%s\n%d\n", order, e.GetUnicodeFormsForStrokeNames(order), order.Count())
	return 0
}

func importData(ctx context.Context, store *sqlstore.Store, logger *log.Logger) error {
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if importOrders != "" {
		n, err := store.ImportStrokeOrders(ctx, readLines(importOrders))
		if err != nil {
			return err
		}
		logger.Printf("imported %d stroke orders from %s", n, importOrders)
	}
	if importDecompositions != "" {
		n, err := store.ImportDecompositions(ctx, readLines(importDecompositions))
		if err != nil {
			return err
		}
		logger.Printf("imported %d decompositions from %s", n, importDecompositions)
	}
	return nil
}

func readLines(path string) []string {
	if !fs.IsExist(path) {
		log.Fatalf("file %s not found", path)
	}
	lines, err := str.SplitLines(string(fs.LoadFile(path)))
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return lines
}

func serve(c Config, engines *strokeorder.Engines, logger *log.Logger) {
	if c.Server == "" {
		logger.Fatal("server can not be empty")
	}
	restEndpoint := rest.New(rest.Config{
		Server:        c.Server,
		DefaultEngine: c.DefaultEngine,
		AllowReload:   c.AllowReload,
	}, engines, logger)
	//添加全局拦截器
	restEndpoint.AddInterceptors(func(exchange *rest.Exchange) bool {
		exchange.Out.Headers().Set("Access-Control-Allow-Origin", "*")
		return true
	})

	var cronSchedule *schedule.Schedule
	if c.ReloadCron != "" {
		cronSchedule = schedule.New(logger)
		if _, err := cronSchedule.AddReload(c.ReloadCron, engines); err != nil {
			logger.Fatal("error:", err)
		}
		_ = cronSchedule.Start()
	}

	go func() {
		if err := restEndpoint.Start(); err != nil {
			logger.Fatal("error:", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	// 监听系统信号，包括中断信号和终止信号
	signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	if cronSchedule != nil {
		_ = cronSchedule.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = restEndpoint.Stop(ctx)
	logger.Println("stopped server")
}
