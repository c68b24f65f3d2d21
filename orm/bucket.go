/*
Package orm stores typed objects in named prefixes of the state.

Each bucket holds one type, keyed by a primary key, and keeps any number
of secondary indexes in step on every write. Challenges, their custodies
and accounts are all kept this way.
*/
package orm

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects cloned from proto under "<name>:<key>".
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Indexed
}

var _ trinity.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lower case letters.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), proto: proto}
}

func (b Bucket) Name() string {
	return b.name
}

// Register exposes the bucket under "/<name>" and every index under
// "/<name>/<index>". An empty name falls back to the bucket name.
func (b Bucket) Register(name string, r trinity.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
	for idx, h := range b.indexes {
		r.Register("/"+name+"/"+idx, h)
	}
}

func (b Bucket) Query(db trinity.ReadOnlyKVStore, mod string, data []byte) ([]trinity.Model, error) {
	switch mod {
	case trinity.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []trinity.Model{trinity.Pair(key, value)}, nil
	case trinity.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	}
	return nil, errors.Wrapf(errors.ErrHuman, "unknown mod: %s", mod)
}

// DBKey returns a fresh slice on every call.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get returns nil without an error when nothing is stored under key.
func (b Bucket) Get(db trinity.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db trinity.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a clone of the bucket prototype.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal %s entry: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates the object, updates all indexes and writes it.
func (b Bucket) Save(db trinity.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if raw == nil {
		// nil would read back as a missing entry
		raw = []byte{}
	}
	if err := b.updateIndexes(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db trinity.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

// updateIndexes walks the indexes in name order so the writes are the
// same on every node.
func (b Bucket) updateIndexes(db trinity.KVStore, key []byte, obj Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && obj == nil {
		return nil
	}
	names := make([]string, 0, len(b.indexes))
	for name := range b.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := b.indexes[name].Update(db, prev, obj); err != nil {
			return err
		}
	}
	return nil
}

// WithIndex returns a copy of the bucket with one more index. It panics
// when the name is taken.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	indexes := make(map[string]Indexed, len(b.indexes)+1)
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	indexes[name] = NewIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = indexes
	return b
}

func (b Bucket) index(name string) (Indexed, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	return idx, nil
}

// GetIndexed loads every object the named index holds under value.
func (b Bucket) GetIndexed(db trinity.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, err := b.index(name)
	if err != nil {
		return nil, err
	}
	keys, err := idx.GetAt(db, value)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	objs := make([]Object, len(keys))
	for i, key := range keys {
		if objs[i], err = b.Get(db, key); err != nil {
			return nil, err
		}
	}
	return objs, nil
}
