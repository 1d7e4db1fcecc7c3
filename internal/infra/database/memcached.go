package database

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached connects to one or more memcached servers.
func NewMemcached(servers []string, timeout time.Duration) *memcache.Client {
	mc := memcache.New(servers...)
	if timeout > 0 {
		mc.Timeout = timeout
	}
	return mc
}
