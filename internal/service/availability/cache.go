package availability

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	engine "github.com/turnomed/scheduling-api/internal/availability"
	"github.com/turnomed/scheduling-api/internal/model"
)

// cachedGrid is a candidate slot grid before occupancy marking. Only the
// schedule-derived part is cached; existing appointments are always
// applied fresh.
type cachedGrid struct {
	slots      []model.TimeSlot
	resolution engine.Resolution
}

// slotCache keys grids by (doctor, version, date). Invalidation bumps
// the doctor's version, orphaning old entries until the LRU evicts them.
type slotCache struct {
	lru *expirable.LRU[string, cachedGrid]

	mu       sync.Mutex
	versions map[uuid.UUID]uint64
}

func newSlotCache(size int, ttl time.Duration) *slotCache {
	return &slotCache{
		lru:      expirable.NewLRU[string, cachedGrid](size, nil, ttl),
		versions: make(map[uuid.UUID]uint64),
	}
}

func (c *slotCache) key(doctorID uuid.UUID, date model.Date) string {
	c.mu.Lock()
	version := c.versions[doctorID]
	c.mu.Unlock()
	return fmt.Sprintf("%s:%d:%s", doctorID, version, date)
}

func (c *slotCache) get(doctorID uuid.UUID, date model.Date) (cachedGrid, bool) {
	return c.lru.Get(c.key(doctorID, date))
}

func (c *slotCache) set(doctorID uuid.UUID, date model.Date, grid cachedGrid) {
	c.lru.Add(c.key(doctorID, date), grid)
}

func (c *slotCache) invalidate(doctorID uuid.UUID) {
	c.mu.Lock()
	c.versions[doctorID]++
	c.mu.Unlock()
}
