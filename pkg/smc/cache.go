package smc

import (
	"log/slog"
	"sync"
)

// Domain identifies a logical sensor group with its own key cache.
type Domain int

const (
	DomainCPU Domain = iota
	DomainGPU
	DomainBoard
	domainCount
)

func (d Domain) String() string {
	switch d {
	case DomainCPU:
		return "cpu"
	case DomainGPU:
		return "gpu"
	case DomainBoard:
		return "board"
	default:
		return "unknown"
	}
}

// MaxCachedKeys caps each domain's cache. Probing stops early once a domain
// reaches capacity.
const MaxCachedKeys = 32

// KeyCache owns the set of sensor keys known to exist on this machine.
// It is built exactly once, lazily, on first use, and never mutated after
// the one-time build. A metadata-query failure for one candidate simply
// excludes that key; if the underlying endpoint could not be opened at all,
// every domain stays permanently empty and reads report absent.
type KeyCache struct {
	client *Client

	once    sync.Once
	domains [domainCount][]CachedKey
}

// NewKeyCache creates a cache backed by the given client. The client may be
// nil when the endpoint is unavailable; the cache then stays empty.
func NewKeyCache(c *Client) *KeyCache {
	return &KeyCache{client: c}
}

// Keys returns the cached keys for a domain, probing all domains on first
// use. The returned slice must not be mutated.
func (kc *KeyCache) Keys(d Domain) []CachedKey {
	kc.once.Do(kc.probeAll)
	return kc.domains[d]
}

// MeanTemp reads every cached key in the domain and reports the windowed
// arithmetic mean, or an absent Reading when nothing survives the window.
func (kc *KeyCache) MeanTemp(d Domain, w Window) Reading {
	keys := kc.Keys(d)
	if kc.client == nil || len(keys) == 0 {
		return Reading{}
	}
	return kc.client.MeanReading(keys, w)
}

func (kc *KeyCache) probeAll() {
	if kc.client == nil {
		return
	}
	kc.domains[DomainCPU] = kc.probe(cpuCandidateKeys)
	kc.domains[DomainGPU] = kc.probe(gpuCandidateKeys)
	kc.domains[DomainBoard] = kc.probe(boardCandidateKeys)

	slog.Debug("smc key cache built",
		"cpu", len(kc.domains[DomainCPU]),
		"gpu", len(kc.domains[DomainGPU]),
		"board", len(kc.domains[DomainBoard]))
}

// probe issues a metadata query for each candidate, retaining keys that
// exist and report a usable value size.
func (kc *KeyCache) probe(candidates []string) []CachedKey {
	var keys []CachedKey
	for _, s := range candidates {
		if len(keys) >= MaxCachedKeys {
			break
		}
		k := KeyFromString(s)
		info, err := kc.client.KeyInfo(k)
		if err != nil {
			continue
		}
		if info.DataSize == 0 || info.DataSize > MaxValueSize {
			continue
		}
		keys = append(keys, CachedKey{Key: k, Info: info})
	}
	return keys
}
