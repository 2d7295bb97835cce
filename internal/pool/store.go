// internal/pool/store.go
//
// Process-wide, load-once pool handle.
//
// Context
// -------
// The pool file is read at most once per process.  Store guards the load
// with singleflight so a burst of first requests produces a single disk
// read, and caches the result in an atomic.Pointer for lock-free reads
// afterwards.  A failed load is not cached; the next caller retries,
// which matters during rolling deploys where the pool file may land a
// moment after the binary.
//
// The handle is injected into consumers explicitly.  Nothing in this
// package exposes a package-level "current pool" singleton.

package pool

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Store memoizes one Load of a pool file.  Zero value is unusable;
// construct with NewStore.
type Store struct {
	path    string
	sfg     singleflight.Group
	current atomic.Pointer[Pool]
}

// NewStore returns a Store bound to path.  The file is not touched until
// the first Get.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the loaded pool, loading it on first use.  Concurrent first
// calls share a single load.
func (s *Store) Get() (*Pool, error) {
	if p := s.current.Load(); p != nil {
		return p, nil
	}

	v, err, _ := s.sfg.Do("load", func() (interface{}, error) {
		// Double-check after the singleflight barrier.
		if p := s.current.Load(); p != nil {
			return p, nil
		}
		p, err := Load(s.path)
		if err != nil {
			return nil, err
		}
		s.current.Store(p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Pool), nil
}

// MustGet is Get for bootstrap paths that treat a bad pool as fatal.
func (s *Store) MustGet() *Pool {
	p, err := s.Get()
	if err != nil {
		panic(err)
	}
	return p
}
