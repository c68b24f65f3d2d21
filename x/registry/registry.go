package registry

import (
	"fmt"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/gconf"
)

// gconfPkg is the configuration package name of the registry.
const gconfPkg = "registry"

// Role is a capability granted by the registry.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleAPISigner
	RoleModerator
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAPISigner:
		return "api_signer"
	case RoleModerator:
		return "moderator"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Registry reads the registry singleton from the store.
type Registry struct{}

// NewRegistry returns a registry reader.
func NewRegistry() Registry {
	return Registry{}
}

// Config loads the registry configuration.
func (Registry) Config(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, gconfPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	return &conf, nil
}

// IsMember returns true if addr was granted given role.
func (r Registry) IsMember(db gconf.ReadStore, role Role, addr trinity.Address) (bool, error) {
	conf, err := r.Config(db)
	if err != nil {
		return false, err
	}
	switch role {
	case RoleAdmin:
		return conf.Admin.Equals(addr), nil
	case RoleAPISigner:
		return contains(conf.APISigners, addr), nil
	case RoleModerator:
		return contains(conf.Moderators, addr), nil
	default:
		return false, errors.Wrapf(errors.ErrInvalidInput, "unknown %s", role)
	}
}

// Treasury returns the address collecting challenge fees.
func (r Registry) Treasury(db gconf.ReadStore) (trinity.Address, error) {
	conf, err := r.Config(db)
	if err != nil {
		return nil, err
	}
	return conf.Treasury, nil
}

// RegisterQuery exposes the registry as "/registry".
func RegisterQuery(qr trinity.QueryRouter) {
	qr.Register("/registry", configQuery{})
}

type configQuery struct{}

var _ trinity.QueryHandler = configQuery{}

// Query returns the raw configuration. The query data is ignored, there is
// only one registry.
func (configQuery) Query(db trinity.ReadOnlyKVStore, mod string, data []byte) ([]trinity.Model, error) {
	if mod != trinity.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrHuman, "unknown mod: %s", mod)
	}
	key := gconf.Key(gconfPkg)
	raw, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []trinity.Model{trinity.Pair(key, raw)}, nil
}
