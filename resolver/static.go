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
	"strings"
	"sync"

	"github.com/tochemey/userdir/errors"
)

// Static is an in-memory Resolver backed by fixed profiles and screen names.
type Static struct {
	parser *Parser

	mu          sync.RWMutex
	individuals map[int64]Profile
	collectives map[int64]Profile
	screenNames map[string]Resolution
}

var (
	_ Resolver         = (*Static)(nil)
	_ ScreenNameLookup = (*Static)(nil)
)

// NewStatic creates an empty Static resolver.
func NewStatic() *Static {
	s := &Static{
		individuals: make(map[int64]Profile),
		collectives: make(map[int64]Profile),
		screenNames: make(map[string]Resolution),
	}
	s.parser = NewParser(s)
	return s
}

// AddIndividual registers the profile of an individual.
func (s *Static) AddIndividual(id int64, displayName, secondaryName string) *Static {
	s.mu.Lock()
	s.individuals[id] = Profile{DisplayName: displayName, SecondaryName: secondaryName}
	s.mu.Unlock()
	return s
}

// AddCollective registers the profile of a collective by its positive id.
func (s *Static) AddCollective(id int64, name string) *Static {
	s.mu.Lock()
	s.collectives[id] = Profile{DisplayName: name}
	s.mu.Unlock()
	return s
}

// AddScreenName maps a screen name to a resolution.
func (s *Static) AddScreenName(name string, resolution Resolution) *Static {
	s.mu.Lock()
	s.screenNames[strings.ToLower(name)] = resolution
	s.mu.Unlock()
	return s
}

// ResolveString implements Resolver.
func (s *Static) ResolveString(ctx context.Context, str string) (Resolution, error) {
	return s.parser.ResolveString(ctx, str)
}

// LookupScreenName implements ScreenNameLookup. Unknown names resolve to KindOther.
func (s *Static) LookupScreenName(_ context.Context, name string) (Resolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if resolution, ok := s.screenNames[strings.ToLower(name)]; ok {
		return resolution, nil
	}
	return Resolution{Kind: KindOther}, nil
}

// FetchIndividualProfile implements Resolver.
func (s *Static) FetchIndividualProfile(_ context.Context, id int64) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.individuals[id]; ok {
		return profile, nil
	}
	return Profile{}, errors.ErrProfileNotFound
}

// FetchCollectiveProfile implements Resolver.
func (s *Static) FetchCollectiveProfile(_ context.Context, id int64) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.collectives[id]; ok {
		return profile, nil
	}
	return Profile{}, errors.ErrProfileNotFound
}
