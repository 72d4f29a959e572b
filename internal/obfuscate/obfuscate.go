// Package obfuscate serves selected route prefixes under secret aliases.
// It only reduces automated discovery; handlers still enforce authorization.
package obfuscate

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Route maps a public prefix to the hidden prefix it is served under.
type Route struct {
	Public string `toml:"public"`
	Hidden string `toml:"hidden"`
}

// Map is the set of obfuscated routes.
type Map struct {
	Routes []Route `toml:"route"`
}

// Read decodes a Map from TOML.
func Read(r io.Reader) (*Map, error) {
	var m Map
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode route map: %w", err)
	}
	for i := range m.Routes {
		m.Routes[i].Public = cleanPrefix(m.Routes[i].Public)
		m.Routes[i].Hidden = cleanPrefix(m.Routes[i].Hidden)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFromFile reads a Map from the TOML file at path.
func ReadFromFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open route map: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading route map from %s: %w", path, err)
	}
	return m, nil
}

func (m *Map) validate() error {
	seen := map[string]bool{}
	for _, r := range m.Routes {
		if r.Public == "/" || r.Hidden == "/" {
			return fmt.Errorf("route %q -> %q: prefixes must not be empty or /", r.Public, r.Hidden)
		}
		if r.Public == r.Hidden {
			return fmt.Errorf("route %q: hidden prefix must differ from public prefix", r.Public)
		}
		if seen[r.Hidden] {
			return fmt.Errorf("hidden prefix %q used twice", r.Hidden)
		}
		seen[r.Hidden] = true
	}
	return nil
}

// Middleware rewrites requests arriving on a hidden prefix to the public
// route and answers 404 for direct requests to a public prefix.
func (m *Map) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			for _, route := range m.Routes {
				if rest, ok := cutPrefix(path, route.Hidden); ok {
					r2 := r.Clone(r.Context())
					r2.URL.Path = route.Public + rest
					r2.URL.RawPath = ""
					next.ServeHTTP(w, r2)
					return
				}
			}
			for _, route := range m.Routes {
				if _, ok := cutPrefix(path, route.Public); ok {
					http.NotFound(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// cutPrefix matches prefix on a path segment boundary.
func cutPrefix(path, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || (rest != "" && rest[0] != '/') {
		return "", false
	}
	return rest, true
}

func cleanPrefix(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
