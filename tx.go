package trinity

import (
	"reflect"

	"github.com/iov-one/trinity/errors"
)

// Marshaller is anything with a binary form. Marshal may validate first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be written to and read back from the store. Unmarshal
// needs a pointer receiver, which is why Marshaller stands on its own.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Validater checks a value without looking at the state.
type Validater interface {
	Validate() error
}

// Msg asks for one state transition, like creating a challenge or voting
// on its outcome. A Msg carries no authentication, that is the job of the
// Tx around it.
type Msg interface {
	Persistent
	Validater

	// Path routes the message to its handler. It must match
	// [a-z0-9_/]+ and by convention is "<extension>/<action>", for
	// example "challenge/accept".
	Path() string
}

// Tx is what a client sends: one message plus whatever the decorators need
// to authenticate it, like signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses the raw bytes tendermint hands to CheckTx and DeliverTx.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath is the message path of tx, or "(missing)" for logging when there
// is no message.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg validates the message of tx and copies it into dest, which must
// be a non nil pointer to the concrete message type:
//
//	var msg CreateChallengeMsg
//	if err := trinity.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil || reflect.ValueOf(msg).IsNil() {
		return errors.Wrap(errors.ErrInvalidState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return errors.Wrapf(errors.ErrInvalidType, "destination %T is not a usable pointer", dest)
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if !src.Type().AssignableTo(target.Elem().Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "cannot load %T into %T", msg, dest)
	}
	target.Elem().Set(src)
	return nil
}
