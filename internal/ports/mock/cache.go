package mock

import (
	"context"
	"sync"

	userPort "postboard/internal/ports/user"
)

// NameCache is an in-memory userPort.NameCache that counts its traffic.
type NameCache struct {
	mutex sync.Mutex
	names map[string]string

	Hits, Misses, Sets, Forgets int
	Err                         error
}

var _ userPort.NameCache = (*NameCache)(nil)

func NewNameCache() *NameCache {
	return &NameCache{names: make(map[string]string)}
}

func (c *NameCache) GetName(ctx context.Context, userID string) (string, bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.Err != nil {
		return "", false, c.Err
	}
	name, ok := c.names[userID]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return name, ok, nil
}

func (c *NameCache) SetName(ctx context.Context, userID, name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Sets++
	c.names[userID] = name
	return nil
}

// SetNameIfAbsent counts as a set only when it writes.
func (c *NameCache) SetNameIfAbsent(ctx context.Context, userID, name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.names[userID]; ok {
		return nil
	}
	c.Sets++
	c.names[userID] = name
	return nil
}

func (c *NameCache) Forget(ctx context.Context, userID string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Forgets++
	delete(c.names, userID)
	return nil
}
