// Package regexcache caches compiled regular expressions keyed by pattern
// text, in the two-tier shape of
// github.com/grafana/agent/pkg/river/vm/internal/rivertags's field cache:
// a read lock for the common case, promoted to a write lock only the first
// time a given pattern is seen.
package regexcache

import (
	"sync"

	"github.com/grafana/regexp"
)

var (
	mut   sync.RWMutex
	cache = map[string]*regexp.Regexp{}
)

// Compile returns a compiled *regexp.Regexp for pattern, reusing a
// previously compiled one when available.
func Compile(pattern string) (*regexp.Regexp, error) {
	mut.RLock()
	re, ok := cache[pattern]
	mut.RUnlock()
	if ok {
		return re, nil
	}

	mut.Lock()
	defer mut.Unlock()

	if re, ok := cache[pattern]; ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache[pattern] = re
	return re, nil
}
