// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package authz_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/authz"
)

/*
TestSet_IsAuthorized covers the three matching modes (literal domain, literal
email, pattern) and their union semantics.
*/
func TestSet_IsAuthorized(t *testing.T) {
	tests := []struct {
		name     string
		elements []string
		email    string
		allowed  bool
	}{
		{"literal_domain_match", []string{"example.com"}, "alice@example.com", true},
		{"literal_domain_miss", []string{"example.com"}, "alice@other.com", false},
		{"literal_email_match", []string{"admin@other.org"}, "admin@other.org", true},
		{"literal_email_miss", []string{"admin@other.org"}, "intern@other.org", false},
		{"pattern_match", []string{`.*\.corp\.net`}, "bob@eu.corp.net", true},
		{"pattern_miss", []string{`.*\.corp\.net`}, "bob@corp.com", false},
		{"union_second_element_wins", []string{"example.com", "other.org"}, "carol@other.org", true},
		{"subdomain_matched_via_pattern_candidate", []string{"example.com"}, "dave@mail.example.com", true},
		{"anchored_pattern_excludes_subdomain", []string{`^example\.com$`}, "dave@mail.example.com", false},
		{"anchored_pattern_matches_exact_domain", []string{`^example\.com$`}, "alice@example.com", true},
		{"pattern_is_substring_search", []string{"corp"}, "eve@corp.io", true},
		{"domain_after_last_at", []string{"example.com"}, `"weird@user"@example.com`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := authz.New(tt.elements)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, set.IsAuthorized(tt.email))
		})
	}
}

/*
TestSet_FailsClosed verifies that emails without a usable domain are never
authorized, even against a catch-all pattern.
*/
func TestSet_FailsClosed(t *testing.T) {
	set, err := authz.New([]string{".*"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		email string
	}{
		{"empty_email", ""},
		{"no_at_sign", "not-an-email"},
		{"trailing_at", "alice@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, set.IsAuthorized(tt.email))
		})
	}

	// Sanity: the catch-all does admit a well-formed address.
	assert.True(t, set.IsAuthorized("alice@anywhere.example"))
}

/*
TestSet_InvalidRegexStaysLiteral verifies that an element with invalid regex
syntax still works as a literal domain or email.
*/
func TestSet_InvalidRegexStaysLiteral(t *testing.T) {
	// "c++.com" is invalid regex (dangling quantifier) but a plausible domain.
	set, err := authz.New([]string{"c++.com"})
	require.NoError(t, err)

	assert.True(t, set.IsAuthorized("dev@c++.com"))
	assert.False(t, set.IsAuthorized("dev@cc.com"))
}

/*
TestNew_EmptyList verifies that an empty allow-list is a construction error
rather than a permissive default.
*/
func TestNew_EmptyList(t *testing.T) {
	tests := []struct {
		name     string
		elements []string
	}{
		{"nil", nil},
		{"all_empty", []string{"", "  ", "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := authz.New(tt.elements)
			assert.Error(t, err)
			assert.Nil(t, set)
		})
	}
}

/*
TestParseList verifies comma splitting and whitespace trimming.
*/
func TestParseList(t *testing.T) {
	set, err := authz.ParseList(" example.com , admin@other.org ,, ")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"example.com", "admin@other.org"}, set.Elements())
	assert.True(t, set.IsAuthorized("alice@example.com"))
	assert.True(t, set.IsAuthorized("admin@other.org"))
	assert.False(t, set.IsAuthorized("alice@unknown.net"))
}

/*
TestSet_Elements verifies that the returned slice is a copy and mutation does
not affect later decisions.
*/
func TestSet_Elements(t *testing.T) {
	set, err := authz.New([]string{"example.com"})
	require.NoError(t, err)

	elements := set.Elements()
	elements[0] = "hijacked.com"

	assert.True(t, set.IsAuthorized("alice@example.com"))
	assert.False(t, set.IsAuthorized("alice@hijacked.com"))
}

/*
TestSet_AuthorizationProperty cross-checks IsAuthorized against a reference
predicate over randomly generated sets and emails, including empty-domain
edge cases.
*/
func TestSet_AuthorizationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	domains := []string{"example.com", "other.org", "corp.net", "eu.corp.net", "warden.io"}
	locals := []string{"alice", "bob", "carol", ""}

	randomEmail := func() string {
		local := locals[rng.Intn(len(locals))]
		if rng.Intn(10) == 0 {
			return local // no '@' at all
		}
		return local + "@" + domains[rng.Intn(len(domains))]
	}

	for i := 0; i < 200; i++ {
		// Literal-only sets keep the reference predicate trivial: every
		// element here is regex-safe and matches only itself.
		size := 1 + rng.Intn(3)
		elements := make([]string, 0, size)
		for j := 0; j < size; j++ {
			element := domains[rng.Intn(len(domains))]
			if rng.Intn(4) == 0 {
				if candidate := randomEmail(); candidate != "" {
					element = candidate
				}
			}
			elements = append(elements, element)
		}

		set, err := authz.New(elements)
		require.NoError(t, err)

		email := randomEmail()
		domain := ""
		if at := strings.LastIndex(email, "@"); at >= 0 {
			domain = email[at+1:]
		}

		expected := false
		if email != "" && domain != "" {
			for _, element := range elements {
				element = strings.TrimSpace(element)
				if element == "" {
					continue
				}
				if element == domain || element == email || strings.Contains(domain, element) {
					expected = true
					break
				}
			}
		}

		assert.Equalf(t, expected, set.IsAuthorized(email),
			"set=%v email=%q", elements, email)
	}
}
