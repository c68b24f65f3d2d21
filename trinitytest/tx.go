package trinitytest

import "github.com/iov-one/trinity"

// Tx carries one message. Err, when set, is returned by GetMsg.
type Tx struct {
	Msg trinity.Msg
	Err error
}

var _ trinity.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (trinity.Msg, error) { return tx.Msg, tx.Err }

// Marshal and Unmarshal are never called on an in memory transaction.
func (tx *Tx) Marshal() ([]byte, error) { panic("mock transaction is not serialized") }
func (tx *Tx) Unmarshal([]byte) error   { panic("mock transaction is not serialized") }

// Msg routes to RoutePath and keeps its bytes as is. Err, when set, fails
// validation and serialization.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ trinity.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
