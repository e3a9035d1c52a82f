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


// Package pool provides a bounded goroutine pool used to evaluate independent
// candidate decompositions of a character in parallel.
//
// The worker reuse scheme follows fasthttp's workerpool
// (https://github.com/valyala/fasthttp/blob/master/workerpool.go).
package pool

import (
	"errors"
	"sync"
	"time"
)

// ErrNoIdleWorkers is returned by Submit when every worker is busy and MaxWorkersCount is reached.
// Callers are expected to run the task themselves.
var ErrNoIdleWorkers = errors.New("no idle workers")

// WorkerPool serves submitted tasks with at most MaxWorkersCount goroutines. Idle workers are
// reused most recently used first and exit after MaxIdleWorkerDuration.
//
// 协程池，Submit 从不阻塞
type WorkerPool struct {
	MaxWorkersCount int
	// MaxIdleWorkerDuration defaults to 10s.
	MaxIdleWorkerDuration time.Duration

	lock         sync.Mutex
	workersCount int
	mustStop     bool
	// ready is ordered by lastUseTime, oldest first.
	ready  []*workerChan
	stopCh chan struct{}
}

type workerChan struct {
	lastUseTime time.Time
	ch          chan func()
}

// Start launches the idle worker cleaner. Calling Start twice is a no-op.
func (wp *WorkerPool) Start() {
	if wp.stopCh != nil {
		return
	}
	wp.stopCh = make(chan struct{})
	stopCh := wp.stopCh
	go func() {
		ticker := time.NewTicker(wp.maxIdleWorkerDuration())
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				wp.clean()
			}
		}
	}()
}

// Release stops the cleaner and the idle workers. Busy workers exit after their current task.
// It satisfies types.Pool.
func (wp *WorkerPool) Release() {
	if wp.stopCh == nil {
		return
	}
	close(wp.stopCh)
	wp.stopCh = nil

	wp.lock.Lock()
	for i, ch := range wp.ready {
		ch.ch <- nil
		wp.ready[i] = nil
	}
	wp.ready = wp.ready[:0]
	wp.mustStop = true
	wp.lock.Unlock()
}

// WorkersCount returns the number of live workers.
func (wp *WorkerPool) WorkersCount() int {
	wp.lock.Lock()
	defer wp.lock.Unlock()
	return wp.workersCount
}

// Submit hands fn to an idle or new worker. It returns ErrNoIdleWorkers when the pool is full.
func (wp *WorkerPool) Submit(fn func()) error {
	ch := wp.getCh()
	if ch == nil {
		return ErrNoIdleWorkers
	}
	ch.ch <- fn
	return nil
}

func (wp *WorkerPool) maxIdleWorkerDuration() time.Duration {
	if wp.MaxIdleWorkerDuration <= 0 {
		return 10 * time.Second
	}
	return wp.MaxIdleWorkerDuration
}

// clean stops the workers idle for longer than MaxIdleWorkerDuration.
func (wp *WorkerPool) clean() {
	criticalTime := time.Now().Add(-wp.maxIdleWorkerDuration())

	wp.lock.Lock()
	n := 0
	for n < len(wp.ready) && wp.ready[n].lastUseTime.Before(criticalTime) {
		n++
	}
	expired := append([]*workerChan(nil), wp.ready[:n]...)
	m := copy(wp.ready, wp.ready[n:])
	for i := m; i < len(wp.ready); i++ {
		wp.ready[i] = nil
	}
	wp.ready = wp.ready[:m]
	wp.lock.Unlock()

	// notify outside the lock
	for _, ch := range expired {
		ch.ch <- nil
	}
}

func (wp *WorkerPool) getCh() *workerChan {
	wp.lock.Lock()
	if n := len(wp.ready) - 1; n >= 0 {
		ch := wp.ready[n]
		wp.ready[n] = nil
		wp.ready = wp.ready[:n]
		wp.lock.Unlock()
		return ch
	}
	if wp.workersCount >= wp.MaxWorkersCount {
		wp.lock.Unlock()
		return nil
	}
	wp.workersCount++
	wp.lock.Unlock()

	ch := &workerChan{ch: make(chan func(), 1)}
	go wp.workerFunc(ch)
	return ch
}

// release puts ch back on the ready list, or reports false once the pool is stopped.
func (wp *WorkerPool) release(ch *workerChan) bool {
	ch.lastUseTime = time.Now()

	wp.lock.Lock()
	defer wp.lock.Unlock()
	if wp.mustStop {
		return false
	}
	wp.ready = append(wp.ready, ch)
	return true
}

func (wp *WorkerPool) workerFunc(ch *workerChan) {
	for fn := range ch.ch {
		if fn == nil {
			break
		}
		fn()
		if !wp.release(ch) {
			break
		}
	}

	wp.lock.Lock()
	wp.workersCount--
	wp.lock.Unlock()
}
