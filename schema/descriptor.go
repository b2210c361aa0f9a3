// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package schema

import (
	"fmt"
	"strings"
)

// Kind is the storage kind of a field.
type Kind int

const (
	// KindInvalid is the zero Kind and is rejected by Declare.
	KindInvalid Kind = iota
	// KindInteger is a 64-bit signed integer.
	KindInteger
	// KindString is a text column. Size bounds it when positive.
	KindString
	// KindBoolean is a boolean column.
	KindBoolean
	// KindFloat is a 64-bit float.
	KindFloat
	// KindJSON holds any JSON encodable value.
	KindJSON
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindInteger: "integer",
	KindString:  "string",
	KindBoolean: "boolean",
	KindFloat:   "float",
	KindJSON:    "json",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name into a Kind.
func ParseKind(text string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	for kind, name := range kindNames {
		if kind != KindInvalid && name == needle {
			return kind, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown field kind %q", text)
}

// Descriptor describes how a field is stored.
type Descriptor struct {
	Kind Kind
	// Default is the value a fresh record gets when none is supplied.
	Default  any
	Nullable bool
	// Size bounds KindString columns. Zero means unbounded.
	Size int
}

// Field is a named descriptor.
type Field struct {
	Name       string
	Descriptor Descriptor
}

// Zero returns the value a fresh record holds for this field.
func (d Descriptor) Zero() any {
	if d.Default != nil {
		return d.Default
	}
	if d.Nullable {
		return nil
	}
	switch d.Kind {
	case KindInteger:
		return int64(0)
	case KindString:
		return ""
	case KindBoolean:
		return false
	case KindFloat:
		return float64(0)
	default:
		return nil
	}
}

// Integer returns an integer descriptor with the given default.
func Integer(def int64) Descriptor {
	return Descriptor{Kind: KindInteger, Default: def}
}

// String returns a string descriptor bounded by size.
func String(size int, def string) Descriptor {
	return Descriptor{Kind: KindString, Size: size, Default: def}
}

// Boolean returns a boolean descriptor with the given default.
func Boolean(def bool) Descriptor {
	return Descriptor{Kind: KindBoolean, Default: def}
}

// Float returns a float descriptor with the given default.
func Float(def float64) Descriptor {
	return Descriptor{Kind: KindFloat, Default: def}
}

// JSON returns a nullable JSON descriptor.
func JSON() Descriptor {
	return Descriptor{Kind: KindJSON, Nullable: true}
}
