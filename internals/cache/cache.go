// Ephemeral in-process key/value cache untuk token sekali pakai (QR login).
// Expiry dicek lazy saat Get/Delete; tidak ada background sweep.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt *time.Time // nil = tidak pernah kadaluarsa
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func New() *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Tokens adalah instance bersama untuk alur auth (QR login).
var Tokens = New()

// Get mengembalikan value untuk key. Entry yang sudah lewat expiry
// dihapus dan diperlakukan sebagai tidak ada.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if it.expiresAt != nil && it.expiresAt.Before(c.now()) {
		c.mu.Lock()
		// re-check: entry bisa saja sudah di-Set ulang di antara unlock/lock
		if cur, ok := c.items[key]; ok && cur.expiresAt != nil && cur.expiresAt.Before(c.now()) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return "", false
	}
	return it.value, true
}

// Set menyimpan value dengan TTL dalam detik. ttlSeconds <= 0 berarti
// entry tidak pernah kadaluarsa. Last-writer-wins.
func (c *Cache) Set(key, value string, ttlSeconds int) {
	var exp *time.Time
	if ttlSeconds > 0 {
		t := c.now().Add(time.Duration(ttlSeconds) * time.Second)
		exp = &t
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: exp}
	c.mu.Unlock()
}

// Delete menghapus key; true jika entry (belum kadaluarsa) memang ada.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if !ok {
		return false
	}
	delete(c.items, key)
	if it.expiresAt != nil && it.expiresAt.Before(c.now()) {
		return false
	}
	return true
}
