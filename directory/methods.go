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

package directory

import (
	"fmt"
	"strings"

	"github.com/tochemey/userdir/record"
)

const (
	// MethodURL is the default method returning the profile link of a record.
	MethodURL = "url"
	// MethodMention is the default method returning the chat mention of a record.
	MethodMention = "mention"

	// DefaultProfileURL is the default base of profile links.
	DefaultProfileURL = "https://vk.com"
)

func profilePath(rec *record.Record) string {
	if rec.IsCollective() {
		return fmt.Sprintf("club%d", -rec.Identity())
	}
	return fmt.Sprintf("id%d", rec.Identity())
}

func urlMethod(base string) record.Method {
	base = strings.TrimRight(base, "/")
	return func(rec *record.Record, _ ...any) (any, error) {
		return base + "/" + profilePath(rec), nil
	}
}

// mention accepts an optional label overriding the display name
func mentionMethod(rec *record.Record, args ...any) (any, error) {
	label := rec.DisplayName()
	if len(args) > 0 {
		label = fmt.Sprint(args[0])
	}
	return fmt.Sprintf("[%s|%s]", profilePath(rec), label), nil
}
