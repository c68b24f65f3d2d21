package orm

import (
	"reflect"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Model is a value a ModelBucket can store.
type Model interface {
	trinity.Persistent
	Validate() error
	Copy() CloneableData
}

// ModelBucket loads and stores models directly, hiding the Object wrapper.
type ModelBucket interface {
	// One loads the model under key into dest. It fails with ErrNotFound
	// when nothing is stored and with ErrInvalidType when dest cannot
	// hold the stored model.
	One(db trinity.ReadOnlyKVStore, key []byte, dest Model) error
	// ByIndex lists the primary keys the named index holds under value.
	ByIndex(db trinity.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)
	// Has fails with ErrNotFound when nothing is stored under key.
	Has(db trinity.ReadOnlyKVStore, key []byte) error
	Put(db trinity.KVStore, key []byte, m Model) error
	// Delete fails with ErrNotFound when nothing is stored under key.
	Delete(db trinity.KVStore, key []byte) error
	Register(name string, r trinity.QueryRouter)
}

type modelBucket struct {
	Bucket
}

func NewModelBucket(b Bucket) ModelBucket {
	return modelBucket{Bucket: b}
}

func (mb modelBucket) One(db trinity.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	src := reflect.ValueOf(obj.Value())
	if !src.Type().AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", obj.Value(), dest)
	}
	reflect.ValueOf(dest).Elem().Set(src.Elem())
	return nil
}

func (mb modelBucket) ByIndex(db trinity.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	return idx.GetAt(db, value)
}

func (mb modelBucket) Has(db trinity.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.Bucket.Has(db, key)
	switch {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb modelBucket) Put(db trinity.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if err := mb.Save(db, NewSimpleObj(key, m)); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb modelBucket) Delete(db trinity.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.Bucket.Delete(db, key)
}
