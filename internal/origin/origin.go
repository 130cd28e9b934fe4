// Package origin validates request origins against a configured allow-list.
package origin

import (
	"fmt"
	"net/url"
	"strings"
)

// AllowList is an ordered set of normalized origins.
type AllowList struct {
	origins []string
	index   map[string]struct{}
}

// Normalize trims surrounding space and strips trailing slashes.
func Normalize(o string) string {
	return strings.TrimRight(strings.TrimSpace(o), "/")
}

// ParseAllowList parses a comma-separated origin list. Entries are
// normalized, empty entries dropped and duplicates removed. Each entry must
// be a bare scheme://host[:port] origin.
func ParseAllowList(raw string) (AllowList, error) {
	return NewAllowList(strings.Split(raw, ","))
}

// NewAllowList builds an allow-list from individual origins.
func NewAllowList(origins []string) (AllowList, error) {
	list := AllowList{index: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = Normalize(o)
		if o == "" {
			continue
		}
		if err := validate(o); err != nil {
			return AllowList{}, err
		}
		if _, dup := list.index[o]; dup {
			continue
		}
		list.index[o] = struct{}{}
		list.origins = append(list.origins, o)
	}
	return list, nil
}

func validate(o string) error {
	u, err := url.Parse(o)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", o, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid origin %q: expected scheme://host[:port]", o)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("invalid origin %q: must not carry a path, query, fragment or user info", o)
	}
	return nil
}

// Allows reports whether a request carrying the given Origin header may
// proceed. A missing origin (same-origin or server-to-server) is allowed.
func (l AllowList) Allows(o string) bool {
	if o == "" {
		return true
	}
	_, ok := l.index[Normalize(o)]
	return ok
}

// Origins returns the normalized origins in configuration order.
func (l AllowList) Origins() []string {
	out := make([]string, len(l.origins))
	copy(out, l.origins)
	return out
}

// Empty reports whether no origin is allowed.
func (l AllowList) Empty() bool { return len(l.origins) == 0 }

// String joins the origins with commas.
func (l AllowList) String() string { return strings.Join(l.origins, ",") }
