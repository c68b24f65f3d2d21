package registry

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/gconf"
)

// Initializer creates the registry from the genesis "conf.registry" entry.
type Initializer struct{}

var _ trinity.Initializer = Initializer{}

// FromGenesis stores the registry. It can be created only once.
func (Initializer) FromGenesis(opts trinity.Options, db trinity.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, gconfPkg, &conf)
}
