package orm

import (
	"bytes"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Indexer derives the secondary key of an object, like the second player of
// a challenge. A nil key leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// Indexed is a secondary index kept in step with a bucket.
type Indexed interface {
	trinity.QueryHandler
	// Update moves the object from the entry of prev to the entry of
	// save. A nil prev inserts and a nil save deletes.
	Update(db trinity.KVStore, prev, save Object) error
	// GetAt lists the primary keys stored under one index value.
	GetAt(db trinity.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

// index keeps one entry per index value under "_i.<name>:<value>". A
// unique index stores the single primary key as is, any other index a
// MultiRef.
type index struct {
	name    string
	prefix  []byte
	unique  bool
	indexer Indexer
	dbKey   func(pk []byte) []byte
}

// NewIndex builds an index. dbKey maps a primary key to the key of the
// object in the store, so queries can load the indexed objects.
func NewIndex(name string, indexer Indexer, unique bool, dbKey func([]byte) []byte) Indexed {
	return index{
		name:    name,
		prefix:  []byte("_i." + name + ":"),
		unique:  unique,
		indexer: indexer,
		dbKey:   dbKey,
	}
}

func (i index) key(value []byte) []byte {
	return append(append(make([]byte, 0, len(i.prefix)+len(value)), i.prefix...), value...)
}

func (i index) Update(db trinity.KVStore, prev, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	var from, to []byte
	var err error
	if prev != nil {
		if from, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if to, err = i.indexer(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(from, to) {
		return nil
	}

	// a taken unique value must fail before the old entry is dropped
	if i.unique && len(to) > 0 {
		taken, err := db.Has(i.key(to))
		if err != nil {
			return err
		}
		if taken {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
	}
	if prev != nil {
		if err := i.remove(db, from, prev.Key()); err != nil {
			return err
		}
	}
	if save != nil {
		return i.insert(db, to, save.Key())
	}
	return nil
}

func (i index) GetAt(db trinity.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.key(value))
	if err != nil {
		return nil, err
	}
	return i.decode(raw)
}

func (i index) decode(raw []byte) ([][]byte, error) {
	switch {
	case raw == nil:
		return nil, nil
	case i.unique:
		return [][]byte{raw}, nil
	}
	var set MultiRef
	if err := set.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "index %s: %s", i.name, err)
	}
	return set.Refs, nil
}

// refs loads the reference set of an index value for modification.
func (i index) refs(db trinity.KVStore, value []byte) (*MultiRef, error) {
	keys, err := i.GetAt(db, value)
	if err != nil {
		return nil, err
	}
	return &MultiRef{Refs: keys}, nil
}

// store writes back a reference set, deleting the entry once it is empty.
func (i index) store(db trinity.KVStore, value []byte, set *MultiRef) error {
	switch {
	case len(set.Refs) == 0:
		return db.Delete(i.key(value))
	case i.unique:
		return db.Set(i.key(value), set.Refs[0])
	}
	raw, err := set.Marshal()
	if err != nil {
		return err
	}
	return db.Set(i.key(value), raw)
}

func (i index) insert(db trinity.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	set, err := i.refs(db, value)
	if err != nil {
		return err
	}
	if i.unique && len(set.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	if err := set.Add(pk); err != nil {
		return err
	}
	return i.store(db, value, set)
}

func (i index) remove(db trinity.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	set, err := i.refs(db, value)
	if err != nil {
		return err
	}
	if err := set.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.store(db, value, set)
}

// Query loads the objects of one index value, or with the prefix modifier
// of every value starting with data.
func (i index) Query(db trinity.ReadOnlyKVStore, mod string, data []byte) ([]trinity.Model, error) {
	var pks [][]byte
	switch mod {
	case trinity.KeyQueryMod:
		keys, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		pks = keys
	case trinity.PrefixQueryMod:
		entries, err := queryPrefix(db, i.key(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			keys, err := i.decode(e.Value)
			if err != nil {
				return nil, err
			}
			pks = append(pks, keys...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown mod: %s", mod)
	}

	if len(pks) == 0 {
		return nil, nil
	}
	res := make([]trinity.Model, len(pks))
	for j, pk := range pks {
		key := i.dbKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = trinity.Pair(key, value)
	}
	return res, nil
}
