package orm

import (
	"reflect"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// CloneableData is a value a bucket can store: challenges, custody
// records, balances and the like.
type CloneableData interface {
	trinity.Validater
	trinity.Persistent
	Copy() CloneableData
}

// Object pairs a primary key with its value.
type Object interface {
	trinity.Validater
	Key() []byte
	SetKey([]byte)
	Value() trinity.Persistent
	// Clone copies the object deeply enough that changing the copy leaves
	// the original alone.
	Clone() Object
}

// Cloneable is the prototype a bucket clones for every object it reads.
type Cloneable interface {
	Clone() Object
}

// SimpleObj is the Object every bucket of the ledger uses.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte               { return o.key }
func (o *SimpleObj) SetKey(key []byte)        { o.key = key }
func (o SimpleObj) Value() trinity.Persistent { return o.value }

// Validate requires a key and a value before delegating to the value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone copies the key and the value. A typed nil value, as held by bucket
// prototypes, becomes a fresh zero value ready to unmarshal into.
func (o *SimpleObj) Clone() Object {
	c := &SimpleObj{}
	if len(o.key) > 0 {
		c.key = append([]byte(nil), o.key...)
	}
	if o.value == nil {
		return c
	}
	if v := reflect.ValueOf(o.value); v.IsNil() {
		c.value = reflect.New(v.Type().Elem()).Interface().(CloneableData)
	} else {
		c.value = o.value.Copy()
	}
	return c
}
