package service

import "time"

const (
	// DefaultDictionaryTimeout bounds calls to the primary dictionary
	// endpoint when no timeout is configured.
	DefaultDictionaryTimeout = 10 * time.Second

	// DefaultProxyTimeout bounds calls to the secondary caching endpoint
	// when no timeout is configured. The proxy only exists to shed load,
	// so it gets less patience than the dictionary itself.
	DefaultProxyTimeout = 3 * time.Second

	// MaxUpstreamBody caps how much of an upstream response body is read.
	MaxUpstreamBody = 2 << 20
)
