package services

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	ingestMemoTTL      = 10 * time.Minute
	ingestMemoCapacity = 100000
)

type memoKey struct {
	ShowID  int
	IsMovie bool
}

// IngestMemoService remembers which shows were ingested recently so repeated
// detail-page hits do not refetch the same catalog entry. Entries expire a
// fixed interval after insertion; reads never extend a lease.
type IngestMemoService struct {
	cache *ttlcache.Cache[memoKey, struct{}]
}

func NewIngestMemoService() *IngestMemoService {
	cache := ttlcache.New(
		ttlcache.WithTTL[memoKey, struct{}](ingestMemoTTL),
		ttlcache.WithCapacity[memoKey, struct{}](ingestMemoCapacity),
		ttlcache.WithDisableTouchOnHit[memoKey, struct{}](),
	)
	go cache.Start()

	return &IngestMemoService{cache: cache}
}

// Seen reports whether the show was ingested within the memo window.
func (m *IngestMemoService) Seen(showID int, isMovie bool) bool {
	return m.cache.Has(memoKey{ShowID: showID, IsMovie: isMovie})
}

// Record marks the show as freshly ingested.
func (m *IngestMemoService) Record(showID int, isMovie bool) {
	m.cache.Set(memoKey{ShowID: showID, IsMovie: isMovie}, struct{}{}, ttlcache.DefaultTTL)
}

// Forget drops a single entry so the next lookup refetches.
func (m *IngestMemoService) Forget(showID int, isMovie bool) {
	m.cache.Delete(memoKey{ShowID: showID, IsMovie: isMovie})
}

// Len returns the number of live entries.
func (m *IngestMemoService) Len() int {
	return m.cache.Len()
}

// Stop halts the background expiration loop.
func (m *IngestMemoService) Stop() {
	m.cache.Stop()
}
