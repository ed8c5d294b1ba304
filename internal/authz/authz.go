// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package authz implements the domain allow-list that gates access to the
application.

It answers exactly one question: is this email authorized? The allow-list is
loaded once at process start and never mutated, so a [*Set] is safe for
concurrent reads without locking.

Matching semantics:

  - Literal domain: the part after the last '@' equals an element.
  - Literal email: the full address equals an element.
  - Pattern: the domain matches an element compiled as a regular expression
    (substring search, not a full anchored match).

Every element is simultaneously a candidate for all three checks; the result
is a logical OR, so evaluation order is unobservable.
*/
package authz

import (
	"fmt"
	"regexp"
	"strings"
)

// # Allow-List Set

// Set is an immutable allow-list of domains, email addresses, and patterns.
//
// Construct it once at startup with [New] or [ParseList]; afterwards it is
// read-only and requires no synchronization.
type Set struct {
	elements []string
	patterns []*regexp.Regexp
}

/*
New builds a [Set] from the given elements.

Description: Each element is stored literally and, when it compiles, also as
a regular expression candidate. Compilation failures are not errors; the
element simply stays literal-only.

Parameters:
  - elements: []string (trimmed, non-empty allow-list entries)

Returns:
  - *Set: Immutable matcher
  - error: If the resulting set would be empty (absence of authorization
    configuration is a startup error, never a permissive default)
*/
func New(elements []string) (*Set, error) {
	cleaned := make([]string, 0, len(elements))
	patterns := make([]*regexp.Regexp, 0, len(elements))

	for _, element := range elements {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}
		cleaned = append(cleaned, element)

		// Invalid regex syntax leaves the element as a literal-only candidate.
		if re, err := regexp.Compile(element); err == nil {
			patterns = append(patterns, re)
		}
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("authz: allow-list is empty")
	}

	return &Set{elements: cleaned, patterns: patterns}, nil
}

/*
ParseList builds a [Set] from a comma-separated configuration string.

Description: Entries may carry surrounding whitespace; empty entries are
dropped.

Parameters:
  - raw: string (e.g. "example.com, admin@other.org, .*\.corp\.net")

Returns:
  - *Set: Immutable matcher
  - error: Empty-list startup error
*/
func ParseList(raw string) (*Set, error) {
	return New(strings.Split(raw, ","))
}

// # Authorization Decision

/*
IsAuthorized reports whether the given email intersects the allow-list.

Description: The decision is evaluated fresh on every call. It is a policy
check, not a stored grant. An empty email or an email without a domain never
authorizes, even against a catch-all pattern; a profile with no address must
stay outside regardless of configuration.

Parameters:
  - email: string (primary address extracted from the session profile)

Returns:
  - bool: true iff the email's domain or the email itself is allowed
*/
func (s *Set) IsAuthorized(email string) bool {
	domain := domainOf(email)

	// Fail closed on anonymous or malformed profiles.
	if email == "" || domain == "" {
		return false
	}

	for _, element := range s.elements {
		if element == domain || element == email {
			return true
		}
	}

	for _, pattern := range s.patterns {
		if pattern.MatchString(domain) {
			return true
		}
	}

	return false
}

// Elements returns a copy of the configured allow-list, for startup logging.
func (s *Set) Elements() []string {
	out := make([]string, len(s.elements))
	copy(out, s.elements)
	return out
}

// domainOf returns the substring after the last '@', or "" if there is none.
func domainOf(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}
