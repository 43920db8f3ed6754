package asn1defs

// Cache is a process-lifetime (in practice, per-Parser) map from
// (schema name, raw DER bytes) to a decoded Node, avoiding re-parsing the
// same certificate when a downstream consumer needs the tree again.
// File-scoped: Flush is called at the end of every ParseMemory call.
// Mirrors p11_asn1_cache_take / p11_asn1_cache_flush.
type Cache struct {
	defs    *Defs
	entries map[cacheKey]*Node
}

type cacheKey struct {
	schema SchemaName
	raw    string
}

// NewCache constructs an empty cache bound to the given schema defs.
func NewCache(defs *Defs) *Cache {
	return &Cache{defs: defs, entries: make(map[cacheKey]*Node)}
}

// Defs returns the schema-provider collaborator this cache was built
// with, mirroring p11_asn1_cache_defs.
func (c *Cache) Defs() *Defs { return c.defs }

// Take hands a decoded node to the cache, keyed by schema and the exact
// bytes it was decoded from.
func (c *Cache) Take(node *Node, schema SchemaName, raw []byte) {
	c.entries[cacheKey{schema: schema, raw: string(raw)}] = node
}

// Get returns a previously cached node for (schema, raw), if any.
func (c *Cache) Get(schema SchemaName, raw []byte) (*Node, bool) {
	n, ok := c.entries[cacheKey{schema: schema, raw: string(raw)}]
	return n, ok
}

// Flush drops all cached entries, releasing them for garbage collection.
func (c *Cache) Flush() {
	c.entries = make(map[cacheKey]*Node)
}

// Len reports how many entries are currently cached (test/debug aid).
func (c *Cache) Len() int { return len(c.entries) }
