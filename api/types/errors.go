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

package types

import (
	"errors"
	"fmt"
)

// ErrorKind tags every failure crossing a resolution boundary.
type ErrorKind int

const (
	// InvalidIds is a malformed, incomplete or overrun decomposition. Always fatal.
	InvalidIds ErrorKind = iota + 1
	// NoInformation means the candidate is uninformative: unknown marker, missing data or no rule.
	NoInformation
	// Ambiguous means two valid decompositions disagree.
	Ambiguous
	// ConfigurationError is a malformed rule or stroke name line. It indicates a broken deployment.
	ConfigurationError
	// Cycle is a self-referential decomposition chain or a chain deeper than Config.MaxDepth.
	Cycle
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidIds:
		return "InvalidIds"
	case NoInformation:
		return "NoInformation"
	case Ambiguous:
		return "Ambiguous"
	case ConfigurationError:
		return "Configuration"
	case Cycle:
		return "Cycle"
	default:
		return "Unknown"
	}
}

// Skippable reports whether the aggregator treats the kind as an uninformative candidate.
func (k ErrorKind) Skippable() bool {
	return k == NoInformation || k == Cycle
}

var (
	ErrInvalidIds    = &Error{Kind: InvalidIds}
	ErrNoInformation = &Error{Kind: NoInformation}
	ErrAmbiguous     = &Error{Kind: Ambiguous}
	ErrConfiguration = &Error{Kind: ConfigurationError}
	ErrCycle         = &Error{Kind: Cycle}
)

// Error is the tagged error returned by every stage of the engine.
type Error struct {
	Kind    ErrorKind
	Message string
	// Orders holds the two conflicting sequences of an Ambiguous error.
	Orders []StrokeOrder
}

func (e *Error) Error() string {
	if e.Kind == Ambiguous && len(e.Orders) == 2 {
		return fmt.Sprintf("%s: %s: '%s' vs '%s'", e.Kind, e.Message, e.Orders[0], e.Orders[1])
	}
	return e.Kind.String() + ": " + e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNoInformation) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// NewError creates a tagged error with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAmbiguousError reports two conflicting stroke orders.
func NewAmbiguousError(first, second StrokeOrder) *Error {
	return &Error{
		Kind:    Ambiguous,
		Message: "decompositions disagree on stroke order",
		Orders:  []StrokeOrder{first, second},
	}
}

// KindOf returns the kind of err, or 0 when err is not a tagged engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
