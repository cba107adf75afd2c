/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Variable substitution: $name, ${name}, $ENV[name], $$, and the
 * "uri" variable's sibling-key decomposition
 */
package ippfile

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Resolver resolves a "._tcp" DNS-SD style service URI to its
// concrete address. nil means no resolver is wired; a URI containing
// "._tcp" is then passed through unresolved.
type Resolver func(uri string) (string, error)

// Scope is an immutable chain of variable bindings with copy-on-assign
// semantics: With/WithVar never mutate the receiver, they return a new
// Scope that shares the same parent. Get falls
// through to the parent scope when a name isn't bound locally, giving
// a nested data file (included via a user token callback, say) access
// to its including file's variables.
type Scope struct {
	entries map[string]string
	parent  *Scope
}

// NewScope creates an empty Scope, optionally chained to parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{entries: make(map[string]string), parent: parent}
}

// Get looks up name in s, falling back to s.parent, then its parent,
// and so on.
func (s *Scope) Get(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.entries[name]; ok {
			return v, true
		}
	}
	return "", false
}

// With returns a new Scope equal to s but with name bound to value.
func (s *Scope) With(name, value string) *Scope {
	s2 := &Scope{entries: make(map[string]string, len(s.entries)+1), parent: s.parent}
	for k, v := range s.entries {
		s2.entries[k] = v
	}
	s2.entries[name] = value
	return s2
}

// WithVar is the general DEFINE-time entry point: setting "uri" is a
// derived mutation that decomposes the URI and writes several sibling
// variables; any other name is a plain With.
func (s *Scope) WithVar(name, value string, resolve Resolver) (*Scope, error) {
	if name != "uri" {
		return s.With(name, value), nil
	}
	return s.withURI(value, resolve)
}

// withURI decomposes a "uri" assignment into scheme, uriuser,
// uripassword, hostname, port, resource, and a canonical re-assembled
// uri with userinfo stripped. A "._tcp" URI is resolved through
// resolve first, if one is wired in; otherwise it is used as given, so
// the hook never drags in a DNS-SD dependency.
func (s *Scope) withURI(raw string, resolve Resolver) (*Scope, error) {
	in := raw
	if strings.Contains(in, "._tcp") && resolve != nil {
		resolved, err := resolve(in)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", raw, err)
		}
		in = resolved
	}

	u, err := url.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("invalid uri %q: %w", raw, err)
	}

	var uriuser, uripassword string
	if u.User != nil {
		uriuser = u.User.Username()
		uripassword, _ = u.User.Password()
	}

	resource := u.EscapedPath()
	if u.RawQuery != "" {
		resource += "?" + u.RawQuery
	}
	if resource == "" {
		resource = "/"
	}

	canon := *u
	canon.User = nil
	canonical := canon.String()

	port := 0
	if p := u.Port(); p != "" {
		port, _ = strconv.Atoi(p)
	}

	s2 := s.With("uri", canonical)
	s2 = s2.With("scheme", u.Scheme)
	s2 = s2.With("uriuser", uriuser)
	s2 = s2.With("uripassword", uripassword)
	s2 = s2.With("hostname", u.Hostname())
	s2 = s2.With("port", strconv.Itoa(port))
	s2 = s2.With("resource", resource)
	return s2, nil
}

// isVarNameByte reports whether c may appear in a $name reference.
func isVarNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Expand substitutes $name, ${name}, $ENV[name] and $$ references in
// input against s, falling back through the parent chain. An
// unresolved $name or ${name} expands to the empty string, matching
// the data file's "absent variable" convention; $ENV[name] looks up
// the process environment directly.
func (s *Scope) Expand(input string) (string, error) {
	var buf strings.Builder
	i := 0
	for i < len(input) {
		c := input[i]
		if c != '$' {
			buf.WriteByte(c)
			i++
			continue
		}

		if i+1 < len(input) && input[i+1] == '$' {
			buf.WriteByte('$')
			i += 2
			continue
		}

		if strings.HasPrefix(input[i:], "$ENV[") {
			end := strings.IndexByte(input[i:], ']')
			if end < 0 {
				return "", fmt.Errorf("unterminated $ENV[ in %q", input)
			}
			name := input[i+5 : i+end]
			buf.WriteString(os.Getenv(name))
			i += end + 1
			continue
		}

		if i+1 < len(input) && input[i+1] == '{' {
			end := strings.IndexByte(input[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated ${ in %q", input)
			}
			name := input[i+2 : i+end]
			v, _ := s.Get(name)
			buf.WriteString(v)
			i += end + 1
			continue
		}

		j := i + 1
		for j < len(input) && isVarNameByte(input[j]) {
			j++
		}
		if j == i+1 {
			buf.WriteByte('$')
			i++
			continue
		}
		name := input[i+1 : j]
		v, _ := s.Get(name)
		buf.WriteString(v)
		i = j
	}
	return buf.String(), nil
}
