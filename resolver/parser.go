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

package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tochemey/userdir/errors"
)

var (
	hostPrefixes = []string{"vk.com/", "m.vk.com/", "vk.ru/", "m.vk.ru/", "www.vk.com/"}
	mentionRe    = regexp.MustCompile(`^\[([A-Za-z0-9_.]+)\|[^\]]*\]$`)
	prefixedIDRe = regexp.MustCompile(`^(id|club|public|event)(\d+)$`)
	screenNameRe = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
)

// Parser resolves identity strings that embed their id: profile links,
// mentions and numbers. Bare screen names are handed to the lookup.
type Parser struct {
	lookup ScreenNameLookup
}

// NewParser creates a Parser. lookup may be nil, in which case screen names
// resolve to KindOther.
func NewParser(lookup ScreenNameLookup) *Parser {
	return &Parser{lookup: lookup}
}

// ResolveString resolves s. Recognized forms:
//
//	https://vk.com/id1, vk.com/club5, public5, event5
//	[id1|Ann], [club5|Group], @id1, *id1
//	100, -5
//
// Anything else that looks like a screen name goes to the lookup.
func (p *Parser) ResolveString(ctx context.Context, s string) (Resolution, error) {
	token := normalize(s)
	if token == "" {
		return Resolution{}, errors.NewErrInvalidIdentity(fmt.Errorf("empty identity string %q", s))
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		switch {
		case n > 0:
			return Resolution{Kind: KindIndividual, ID: n}, nil
		case n < 0:
			return Resolution{Kind: KindCollective, ID: -n}, nil
		default:
			return Resolution{}, errors.NewErrInvalidIdentity(strconv.ErrRange)
		}
	}

	if match := prefixedIDRe.FindStringSubmatch(token); match != nil {
		id, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			return Resolution{}, errors.NewErrInvalidIdentity(err)
		}
		if id == 0 {
			return Resolution{}, errors.NewErrInvalidIdentity(strconv.ErrRange)
		}
		if match[1] == "id" {
			return Resolution{Kind: KindIndividual, ID: id}, nil
		}
		return Resolution{Kind: KindCollective, ID: id}, nil
	}

	if !screenNameRe.MatchString(token) {
		return Resolution{Kind: KindOther}, nil
	}

	if p.lookup == nil {
		return Resolution{Kind: KindOther}, nil
	}
	return p.lookup.LookupScreenName(ctx, token)
}

// normalize strips the scheme, host, query and mention decoration of s.
func normalize(s string) string {
	token := strings.TrimSpace(s)
	if match := mentionRe.FindStringSubmatch(token); match != nil {
		return match[1]
	}

	token = strings.TrimPrefix(token, "https://")
	token = strings.TrimPrefix(token, "http://")
	for _, prefix := range hostPrefixes {
		if strings.HasPrefix(strings.ToLower(token), prefix) {
			token = token[len(prefix):]
			break
		}
	}
	if i := strings.IndexAny(token, "?#"); i >= 0 {
		token = token[:i]
	}
	token = strings.TrimSuffix(token, "/")
	token = strings.TrimLeft(token, "@*")
	return token
}
