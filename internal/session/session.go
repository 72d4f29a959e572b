// Package session issues and persists the anonymous per-browser identifier
// used to scope favorites and views. Ids are never registered server side.
package session

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"
)

// StorageKey namespaces the identifier inside client storage.
const StorageKey = "carlot_session_id"

const (
	idPrefix     = "session_"
	suffixLength = 9
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Storage is persistent client-side key/value storage, such as a cookie jar.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Provider hands out the session id held in a Storage, minting one on first use.
type Provider struct {
	signer *Signer
	now    func() time.Time
}

// Option customises a Provider.
type Option func(*Provider)

// WithSigner makes the provider store signed ids and discard forged ones.
func WithSigner(signer *Signer) Option {
	return func(p *Provider) { p.signer = signer }
}

// WithClock overrides the time source used for new ids.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider builds a Provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lookup returns the id already persisted in storage without minting one.
// The second result is false when storage is nil, empty, or holds a value
// whose signature does not verify.
func (p *Provider) Lookup(storage Storage) (string, bool) {
	if storage == nil {
		return "", false
	}
	stored, ok := storage.Get(StorageKey)
	if !ok || stored == "" {
		return "", false
	}
	return p.Resolve(stored)
}

// GetOrCreate returns the id persisted in storage, creating and persisting a
// new one when none is present. A nil storage means no client persistence is
// available: the empty string is returned and nothing is written.
func (p *Provider) GetOrCreate(storage Storage) string {
	if storage == nil {
		return ""
	}
	if id, ok := p.Lookup(storage); ok {
		return id
	}

	id := NewID(p.now())
	storage.Set(StorageKey, p.Encode(id))
	return id
}

// Encode returns the value a client should store and send back for id.
func (p *Provider) Encode(id string) string {
	if p.signer == nil || id == "" {
		return id
	}
	return p.signer.Sign(id)
}

// Resolve turns a client-supplied value into a session id. With a signer
// configured, values whose tag does not verify are rejected.
func (p *Provider) Resolve(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	if p.signer == nil {
		return value, true
	}
	return p.signer.Verify(value)
}

// NewID formats "session_<epoch millis>_<9 random base36 chars>".
// The suffix avoids collisions; it is not a secret.
func NewID(now time.Time) string {
	return idPrefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + randomSuffix(suffixLength)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

type (
	contextKey       struct{}
	storedContextKey struct{}
)

// WithID stores the request's session id on ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the session id placed by WithID, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// WithStoredID records an id the client already held when the request arrived.
func WithStoredID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, storedContextKey{}, id)
}

// StoredFromContext returns the id placed by WithStoredID, or "". Ids minted
// while serving the current request are never returned here.
func StoredFromContext(ctx context.Context) string {
	id, _ := ctx.Value(storedContextKey{}).(string)
	return id
}
