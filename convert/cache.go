package convert

type cacheKey struct {
	File string
	Options
}

// Cache keeps the documents already converted by its owner. A Cache is not
// safe for concurrent use.
type Cache struct {
	docs map[cacheKey]*Document
}

func NewCache() *Cache {
	return &Cache{
		docs: make(map[cacheKey]*Document),
	}
}

func (c *Cache) Load(file string, opts Options) (*Document, error) {
	key := cacheKey{
		File:    file,
		Options: opts,
	}
	if doc, ok := c.docs[key]; ok {
		return doc, nil
	}
	doc, err := ParseFile(file, opts)
	if err != nil {
		return nil, err
	}
	c.docs[key] = doc
	return doc, nil
}

func (c *Cache) Forget(file string) {
	for k := range c.docs {
		if k.File == file {
			delete(c.docs, k)
		}
	}
}

func (c *Cache) Len() int {
	return len(c.docs)
}
