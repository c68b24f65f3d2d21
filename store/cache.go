package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/trinity/errors"
)

// pending is a write buffered by a Cache.
type pending struct {
	key   []byte
	value []byte
	gone  bool
}

func (p pending) Less(than btree.Item) bool {
	return bytes.Compare(p.key, than.(pending).key) < 0
}

// Cache buffers writes in a btree on top of a parent store. Reads see the
// buffered writes before the parent. Write flushes them in key order through
// the out batch, Discard drops them.
type Cache struct {
	writes *btree.BTree
	parent ReadOnlyKVStore
	out    Batch
}

var _ KVCacheWrap = (*Cache)(nil)

// NewCache returns an empty cache over parent. out must write to the same
// store parent reads from.
func NewCache(parent ReadOnlyKVStore, out Batch) *Cache {
	return &Cache{
		writes: btree.New(8),
		parent: parent,
		out:    out,
	}
}

// MemStore returns an in-memory store for tests and check state. It is a
// cache over an empty store, so calling Write on it loses everything.
func MemStore() CacheableKVStore {
	return NewCache(EmptyKVStore{}, EmptyKVStore{}.NewBatch())
}

func (c *Cache) Get(key []byte) ([]byte, error) {
	if p, ok := c.lookup(key); ok {
		return p.value, nil
	}
	return c.parent.Get(key)
}

func (c *Cache) Has(key []byte) (bool, error) {
	if p, ok := c.lookup(key); ok {
		return !p.gone, nil
	}
	return c.parent.Has(key)
}

func (c *Cache) Set(key, value []byte) error {
	c.writes.ReplaceOrInsert(pending{key: key, value: value})
	return nil
}

func (c *Cache) Delete(key []byte) error {
	c.writes.ReplaceOrInsert(pending{key: key, gone: true})
	return nil
}

func (c *Cache) lookup(key []byte) (pending, bool) {
	item := c.writes.Get(pending{key: key})
	if item == nil {
		return pending{}, false
	}
	return item.(pending), true
}

// NewBatch returns a batch that writes into this cache.
func (c *Cache) NewBatch() Batch {
	return NewOpBatch(c)
}

// CacheWrap stacks another cache on top of this one.
func (c *Cache) CacheWrap() KVCacheWrap {
	return NewCache(c, c.NewBatch())
}

// Write flushes every buffered write to the parent and empties the cache.
func (c *Cache) Write() error {
	var err error
	c.writes.Ascend(func(item btree.Item) bool {
		p := item.(pending)
		if p.gone {
			err = c.out.Delete(p.key)
		} else {
			err = c.out.Set(p.key, p.value)
		}
		return err == nil
	})
	c.Discard()
	if err != nil {
		return errors.Wrap(err, "flush cache")
	}
	return c.out.Write()
}

// Discard drops all buffered writes.
func (c *Cache) Discard() {
	c.writes.Clear(false)
}

func (c *Cache) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergeIterator{cached: c.snapshot(start, end, false), parent: parent}, nil
}

func (c *Cache) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergeIterator{cached: c.snapshot(start, end, true), parent: parent, reverse: true}, nil
}

// snapshot copies the buffered writes in [start, end). A nil bound is open.
func (c *Cache) snapshot(start, end []byte, reverse bool) []pending {
	var res []pending
	collect := func(item btree.Item) bool {
		p := item.(pending)
		if end != nil && bytes.Compare(p.key, end) >= 0 {
			return false
		}
		res = append(res, p)
		return true
	}
	if start == nil {
		c.writes.Ascend(collect)
	} else {
		c.writes.AscendGreaterOrEqual(pending{key: start}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// mergeIterator interleaves a cache snapshot with the parent iterator. A
// cached write shadows the parent entry with the same key, and a cached
// delete hides it.
type mergeIterator struct {
	cached  []pending
	parent  Iterator
	head    *Model
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.fill(); err != nil {
			return nil, nil, err
		}
		if len(m.cached) == 0 {
			if m.head == nil {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache")
			}
			return m.pop()
		}

		next := m.cached[0]
		if m.head != nil {
			order := bytes.Compare(m.head.Key, next.key)
			if m.reverse {
				order = -order
			}
			if order < 0 {
				return m.pop()
			}
			if order == 0 {
				m.head = nil
			}
		}
		m.cached = m.cached[1:]
		if !next.gone {
			return next.key, next.value, nil
		}
	}
}

// fill reads the next parent entry into head when head is empty.
func (m *mergeIterator) fill() error {
	if m.head != nil || m.parent == nil {
		return nil
	}
	key, value, err := m.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.parent.Release()
		m.parent = nil
		return nil
	}
	if err != nil {
		return err
	}
	m.head = &Model{Key: key, Value: value}
	return nil
}

func (m *mergeIterator) pop() ([]byte, []byte, error) {
	head := m.head
	m.head = nil
	return head.Key, head.Value, nil
}

func (m *mergeIterator) Release() {
	m.cached = nil
	m.head = nil
	if m.parent != nil {
		m.parent.Release()
		m.parent = nil
	}
}
