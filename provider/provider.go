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

// Package provider supplies rule and stroke name configuration lines from files or memory.
package provider

import (
	"fmt"
	"os"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/utils/fs"
	"github.com/rulego/strokeorder/utils/str"
)

// Lines is a fixed set of configuration lines. It serves as both a RuleProvider and a
// StrokeNameProvider.
type Lines []string

func (l Lines) RuleLines() ([]string, error) {
	return append([]string(nil), l...), nil
}

func (l Lines) StrokeNameLines() ([]string, error) {
	return append([]string(nil), l...), nil
}

// File reads configuration lines from a file, or from every file matching a glob pattern
// such as "rules.d/*.rules". Matching files are concatenated in path order.
type File struct {
	Path string
}

var (
	_ types.RuleProvider       = File{}
	_ types.StrokeNameProvider = File{}
	_ types.RuleProvider       = Lines{}
	_ types.StrokeNameProvider = Lines{}
)

func (f File) RuleLines() ([]string, error) {
	return f.lines()
}

func (f File) StrokeNameLines() ([]string, error) {
	return f.lines()
}

func (f File) lines() ([]string, error) {
	if !fs.IsPattern(f.Path) {
		buf, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Path, err)
		}
		lines, err := str.SplitLines(string(buf))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Path, err)
		}
		return lines, nil
	}
	paths, err := fs.GetFilePaths(f.Path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", f.Path, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no file matches %s", f.Path)
	}
	var lines []string
	for _, path := range paths {
		buf := fs.LoadFile(path)
		if buf == nil {
			return nil, fmt.Errorf("read %s", path)
		}
		fileLines, err := str.SplitLines(string(buf))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		lines = append(lines, fileLines...)
	}
	return lines, nil
}
