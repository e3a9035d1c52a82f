/*
 * Copyright 2023 The RuleGo Authors.
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

// Package schedule reloads engine configuration on cron schedules.
//
// Expressions have a leading seconds field:
//
//	Field name   | Mandatory? | Allowed values  | Allowed special characters
//	----------   | ---------- | --------------  | --------------------------
//	Seconds      | Yes        | 0-59            | * / , -
//	Minutes      | Yes        | 0-59            | * / , -
//	Hours        | Yes        | 0-23            | * / , -
//	Day of month | Yes        | 1-31            | * / , - ?
//	Month        | Yes        | 1-12 or JAN-DEC | * / , -
//	Day of week  | Yes        | 0-6 or SUN-SAT  | * / , - ?
//
// Predefined schedules such as @hourly, @daily and "@every 5m" are accepted as well.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/robfig/cron/v3"
	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/utils/runtime"
)

// Reloader is anything whose configuration can be reloaded, such as *strokeorder.Engine
// or *strokeorder.Engines.
type Reloader interface {
	Reload() error
}

// Schedule 定时任务
type Schedule struct {
	id     string
	Logger types.Logger
	mu     sync.Mutex
	cron   *cron.Cron
}

// New creates a schedule. It does not run until Start is called.
func New(logger types.Logger) *Schedule {
	uuId, _ := uuid.NewV4()
	return &Schedule{Logger: types.NewLogger(logger), cron: cron.New(cron.WithSeconds()), id: uuId.String()}
}

func (schedule *Schedule) Id() string {
	return schedule.id
}

// AddReload reloads target on every activation of spec and returns the task id.
// A failed reload is logged; the target keeps its previous configuration.
func (schedule *Schedule) AddReload(spec string, target Reloader) (string, error) {
	if target == nil {
		return "", errors.New("reload target can not nil")
	}
	return schedule.AddFunc(spec, func() {
		if err := target.Reload(); err != nil {
			schedule.Logger.Printf("schedule %s reload err :%v", schedule.id, err)
		}
	})
}

// AddFunc runs fn on every activation of spec and returns the task id.
func (schedule *Schedule) AddFunc(spec string, fn func()) (string, error) {
	schedule.mu.Lock()
	defer schedule.mu.Unlock()
	if schedule.cron == nil {
		schedule.cron = cron.New(cron.WithSeconds())
	}
	id, err := schedule.cron.AddFunc(spec, func() {
		defer func() {
			//捕捉异常
			if e := recover(); e != nil {
				schedule.Logger.Printf("schedule handler err :%v stack:\n%s", e, runtime.Stack())
			}
		}()
		fn()
	})
	if err != nil {
		return "", fmt.Errorf("invalid cron expression %s: %w", spec, err)
	}
	return strconv.Itoa(int(id)), nil
}

// Remove removes a task by id.
func (schedule *Schedule) Remove(taskId string) error {
	entryID, err := strconv.Atoi(taskId)
	if err != nil {
		return fmt.Errorf("%s it is an illegal task id", taskId)
	}
	schedule.mu.Lock()
	defer schedule.mu.Unlock()
	if schedule.cron != nil {
		schedule.cron.Remove(cron.EntryID(entryID))
	}
	return nil
}

// Len returns the number of scheduled tasks.
func (schedule *Schedule) Len() int {
	schedule.mu.Lock()
	defer schedule.mu.Unlock()
	if schedule.cron == nil {
		return 0
	}
	return len(schedule.cron.Entries())
}

func (schedule *Schedule) Start() error {
	schedule.mu.Lock()
	defer schedule.mu.Unlock()
	if schedule.cron == nil {
		return errors.New("cron has not been initialized yet")
	}
	schedule.cron.Start()
	return nil
}

// Close stops the schedule and waits for running tasks.
func (schedule *Schedule) Close() error {
	schedule.mu.Lock()
	c := schedule.cron
	schedule.cron = nil
	schedule.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
	return nil
}
