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

//go:generate mockgen -source=resolver.go -destination=../mocks/resolver.go -package=mocks Resolver,ScreenNameLookup

import (
	"context"
	"fmt"
)

// Kind is the kind of account an identity string points at.
type Kind int

const (
	// KindOther is anything that is neither an individual nor a collective,
	// for instance an application page.
	KindOther Kind = iota
	// KindIndividual is a person.
	KindIndividual
	// KindCollective is a group, public page or event.
	KindCollective
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual"
	case KindCollective:
		return "collective"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Resolution is the outcome of resolving an identity string. ID is positive
// for both individuals and collectives; the kind carries the distinction.
type Resolution struct {
	Kind Kind
	ID   int64
}

// Identity returns the signed record identity of the resolution: collectives
// map to negative identities.
func (r Resolution) Identity() int64 {
	if r.Kind == KindCollective {
		return -r.ID
	}
	return r.ID
}

// Profile is the descriptive data of an account. Collectives only carry a
// display name.
type Profile struct {
	DisplayName   string
	SecondaryName string
}

// Resolver translates identity strings into identities and fetches profile
// data for identities not seen yet.
type Resolver interface {
	// ResolveString resolves a link, mention, screen name or number.
	ResolveString(ctx context.Context, s string) (Resolution, error)
	// FetchIndividualProfile fetches the profile of an individual.
	FetchIndividualProfile(ctx context.Context, id int64) (Profile, error)
	// FetchCollectiveProfile fetches the profile of a collective. id is the
	// positive collective id.
	FetchCollectiveProfile(ctx context.Context, id int64) (Profile, error)
}

// ScreenNameLookup resolves bare screen names such as "durov" that carry no
// id of their own.
type ScreenNameLookup interface {
	LookupScreenName(ctx context.Context, name string) (Resolution, error)
}
