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

// Package assert provides the minimal assertion helpers used by the tests of this module.
package assert

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// Equal asserts that two values are deeply equal.
func Equal(t testing.TB, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !ObjectsAreEqual(expected, actual) {
		fail(t, "not equal:\nexpected: %#v\nactual  : %#v", []interface{}{expected, actual}, msgAndArgs)
	}
}

// NotEqual asserts that two values are not deeply equal.
func NotEqual(t testing.TB, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if ObjectsAreEqual(expected, actual) {
		fail(t, "should not be: %#v", []interface{}{actual}, msgAndArgs)
	}
}

// EqualCleanString compares two strings ignoring all whitespace.
func EqualCleanString(t testing.TB, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()
	Equal(t, strings.Join(strings.Fields(expected), ""), strings.Join(strings.Fields(actual), ""), msgAndArgs...)
}

// Nil asserts that object is nil.
func Nil(t testing.TB, object interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !isNil(object) {
		fail(t, "expected nil, but got: %#v", []interface{}{object}, msgAndArgs)
	}
}

// NotNil asserts that object is not nil.
func NotNil(t testing.TB, object interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(object) {
		fail(t, "expected value not to be nil", nil, msgAndArgs)
	}
}

// NoError asserts that err is nil.
func NoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		fail(t, "unexpected error: %v", []interface{}{err}, msgAndArgs)
	}
}

// EqualError asserts that err is not nil and its message equals expected.
func EqualError(t testing.TB, err error, expected string, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		fail(t, "expected error %q, got nil", []interface{}{expected}, msgAndArgs)
		return
	}
	if err.Error() != expected {
		fail(t, "error message not equal:\nexpected: %q\nactual  : %q", []interface{}{expected, err.Error()}, msgAndArgs)
	}
}

// True asserts that value is true.
func True(t testing.TB, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !value {
		fail(t, "should be true", nil, msgAndArgs)
	}
}

// False asserts that value is false.
func False(t testing.TB, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if value {
		fail(t, "should be false", nil, msgAndArgs)
	}
}

// Fail reports a failure.
func Fail(t testing.TB, failureMessage string, msgAndArgs ...interface{}) {
	t.Helper()
	fail(t, "%s", []interface{}{failureMessage}, msgAndArgs)
}

// ObjectsAreEqual reports whether expected and actual are equal, comparing []byte by content.
func ObjectsAreEqual(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	exp, ok := expected.([]byte)
	if !ok {
		return reflect.DeepEqual(expected, actual)
	}
	act, ok := actual.([]byte)
	if !ok {
		return false
	}
	return string(exp) == string(act)
}

func isNil(object interface{}) bool {
	if object == nil {
		return true
	}
	value := reflect.ValueOf(object)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return value.IsNil()
	}
	return false
}

func fail(t testing.TB, format string, args []interface{}, msgAndArgs []interface{}) {
	t.Helper()
	msg := ""
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			msg = s
		}
	} else if len(msgAndArgs) > 1 {
		if f, ok := msgAndArgs[0].(string); ok {
			msg = fmt.Sprintf(f, msgAndArgs[1:]...)
		}
	}
	if msg != "" {
		t.Errorf(format+"\nmessage : %s", append(args, msg)...)
	} else {
		t.Errorf(format, args...)
	}
}
