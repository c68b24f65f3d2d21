package registry

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/gconf"
)

const (
	// TagLength is the exact size of a deployment tag.
	TagLength = 16

	// MaxMembers bounds the API signer and the moderator sets.
	MaxMembers = 10
)

// Tag identifies a deployment of the challenge engine.
type Tag []byte

// MarshalJSON provides a hex representation.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(t)))
}

// UnmarshalJSON reads a hex representation.
func (t *Tag) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "tag must be a string")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "tag must be hex encoded")
	}
	*t = b
	return nil
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate checks the addresses, the tag length and the member sets.
func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := c.Treasury.Validate(); err != nil {
		return errors.Wrap(err, "treasury")
	}
	if len(c.DeploymentTag) != TagLength {
		return errors.Wrapf(errors.ErrInvalidInput, "deployment tag must be %d bytes", TagLength)
	}
	if err := validateMembers(c.APISigners); err != nil {
		return errors.Wrap(err, "api signers")
	}
	if err := validateMembers(c.Moderators); err != nil {
		return errors.Wrap(err, "moderators")
	}
	return nil
}

func validateMembers(members []trinity.Address) error {
	if len(members) > MaxMembers {
		return errors.Wrapf(errors.ErrInvalidInput, "at most %d members allowed, got %d", MaxMembers, len(members))
	}
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "member %d", i)
		}
		if _, ok := seen[string(m)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "member %s", m)
		}
		seen[string(m)] = struct{}{}
	}
	return nil
}

func contains(members []trinity.Address, addr trinity.Address) bool {
	for _, m := range members {
		if m.Equals(addr) {
			return true
		}
	}
	return false
}
