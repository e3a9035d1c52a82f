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

// Package fs loads configuration files for the file based providers.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile 加载文件
func LoadFile(filePath string) []byte {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	return buf
}

// IsExist reports whether path exists.
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsPattern reports whether path contains glob meta characters.
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// GetFilePaths 返回匹配的文件路径列表，按路径排序
// The directory part of loadFilePattern is walked recursively and every file whose name
// matches the file part is returned, except those matching excludedPatterns.
func GetFilePaths(loadFilePattern string, excludedPatterns ...string) ([]string, error) {
	dir, file := filepath.Split(loadFilePattern)
	if dir == "" {
		dir = "."
	}
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			matched, _ := filepath.Match(file, d.Name())
			if matched && !isMatch(d, excludedPatterns...) {
				paths = append(paths, path)
			}
		} else if path != dir && isMatch(d, excludedPatterns...) {
			return filepath.SkipDir
		}
		return nil
	})
	sort.Strings(paths)
	return paths, err
}

func isMatch(d fs.DirEntry, patterns ...string) bool {
	for _, item := range patterns {
		if matched, _ := filepath.Match(item, d.Name()); matched {
			return true
		}
	}
	return false
}
