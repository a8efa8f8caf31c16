// Package session holds the client's persisted cookies and the in-memory
// authentication state derived from them.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Cookie names used by the platform. These are the only values the client
// persists anywhere.
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
	CookieUser         = "user"
)

// TTLs in days, matching the backend-issued cookie lifetimes.
const (
	AccessTokenTTLDays  = 7
	RefreshTokenTTLDays = 30
	UserTTLDays         = 7
)

type cookie struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Jar is a small file-backed cookie store. Every operation reads or rewrites
// the whole file; the jar never caches, so concurrent readers always see the
// persisted state.
type Jar struct {
	path string
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "mockmate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mockmate")
}

// NewJar returns the jar at the default config location.
func NewJar() *Jar {
	return &Jar{path: filepath.Join(cfgDir(), "cookies.json")}
}

func (j *Jar) load() []cookie {
	b, err := os.ReadFile(j.path)
	if err != nil {
		return nil
	}
	var cs []cookie
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil
	}
	return cs
}

func (j *Jar) save(cs []cookie) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, b, 0o600)
}

// Get returns the cookie value, or "" when absent or expired.
func (j *Jar) Get(name string) string {
	for _, c := range j.load() {
		if c.Name == name {
			if time.Now().After(c.ExpiresAt) {
				return ""
			}
			return c.Value
		}
	}
	return ""
}

// Set writes a cookie with a TTL in days, replacing any existing entry.
func (j *Jar) Set(name, value string, ttlDays int) error {
	cs := j.load()
	exp := time.Now().AddDate(0, 0, ttlDays)
	for i := range cs {
		if cs[i].Name == name {
			cs[i].Value = value
			cs[i].ExpiresAt = exp
			return j.save(cs)
		}
	}
	cs = append(cs, cookie{Name: name, Value: value, ExpiresAt: exp})
	return j.save(cs)
}

// Delete removes a cookie. Deleting an absent cookie is not an error.
func (j *Jar) Delete(name string) error {
	cs := j.load()
	out := cs[:0]
	for _, c := range cs {
		if c.Name != name {
			out = append(out, c)
		}
	}
	if len(out) == len(cs) {
		return nil
	}
	return j.save(out)
}
