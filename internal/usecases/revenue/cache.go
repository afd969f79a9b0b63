package revenue

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// CacheStatus é um retrato do cache de cargas
type CacheStatus struct {
	Generation uint64 `json:"generation"`
	Entries    int    `json:"entries"`
	Hits       int64  `json:"hits"`
	Misses     int64  `json:"misses"`
}

// cacheEntry guarda o dataset de uma tabela e a identidade da fonte que o gerou
type cacheEntry struct {
	key   string
	value any
}

// loadCache memoriza a última carga de cada tabela pela identidade da fonte.
// Cargas concorrentes da mesma identidade na mesma geração compartilham uma leitura.
type loadCache struct {
	mu         sync.RWMutex
	generation uint64
	entries    map[string]cacheEntry
	group      singleflight.Group
	hits       atomic.Int64
	misses     atomic.Int64
}

func newLoadCache() *loadCache {
	return &loadCache{entries: make(map[string]cacheEntry)}
}

// lookup retorna o valor em cache e a geração corrente
func (c *loadCache) lookup(table, key string) (any, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[table]
	if !ok || entry.key != key {
		return nil, c.generation, false
	}
	return entry.value, c.generation, true
}

// fill executa load uma única vez por (geração, tabela, identidade) e guarda o resultado
// sob a chave devolvida por load; chave vazia devolve o valor sem memorizar.
// Falhas não são memorizadas.
func (c *loadCache) fill(generation uint64, table, key string, load func() (any, string, error)) (any, error) {
	flightKey := strconv.FormatUint(generation, 10) + "|" + table + "|" + key

	value, err, _ := c.group.Do(flightKey, func() (any, error) {
		if value, current, ok := c.lookup(table, key); ok && current == generation {
			return value, nil
		}

		c.misses.Add(1)
		value, storeKey, err := load()
		if err != nil {
			return nil, err
		}
		if storeKey == "" {
			return value, nil
		}

		c.mu.Lock()
		if c.generation == generation {
			c.entries[table] = cacheEntry{key: storeKey, value: value}
		}
		c.mu.Unlock()

		return value, nil
	})

	return value, err
}

// hit contabiliza uma leitura servida pelo cache
func (c *loadCache) hit() {
	c.hits.Add(1)
}

// invalidate descarta todas as entradas e inicia uma nova geração
func (c *loadCache) invalidate() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries = make(map[string]cacheEntry)
	return c.generation
}

func (c *loadCache) status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStatus{
		Generation: c.generation,
		Entries:    len(c.entries),
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
	}
}
