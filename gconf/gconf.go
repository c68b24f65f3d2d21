// Package gconf keeps one configuration singleton per extension, written
// once from genesis and read by the handlers afterwards.
package gconf

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// ReadStore is all Load needs from a store.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is all Save needs from a store.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is a serializable extension setting.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// Key is the store key of the configuration of pkg.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save stores src as the configuration of pkg if it is valid.
func Save(db Store, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "configuration %s", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "configuration %s", pkg)
	}
	return db.Set(Key(pkg), raw)
}

// Load fails with ErrNotFound when pkg was never configured.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(Key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "configuration %s", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "configuration %s: %s", pkg, err)
	}
	return nil
}

// InitConfig saves the genesis entry conf.<pkg> into conf. A package can
// be configured only once.
func InitConfig(db Store, opts trinity.Options, pkg string, conf Configuration) error {
	if raw, err := db.Get(Key(pkg)); err != nil {
		return err
	} else if raw != nil {
		return errors.Wrapf(errors.ErrDuplicate, "configuration %s already set", pkg)
	}

	var all trinity.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return err
	}
	if all[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no genesis configuration for %s", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
