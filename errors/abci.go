package errors

import "fmt"

// SuccessABCICode is the code of a result without an error.
const SuccessABCICode = 0

const (
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// ABCIInfo converts err into the code and log of an ABCI response. Errors
// that do not wrap a registered root error get code 1 and, outside of debug
// mode, a generic log so no internal detail leaks to the client.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return code, internalLog
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from a response code and log on the client
// side. Registered codes wrap their root error so Is keeps working.
func ABCIError(code uint32, log string) error {
	if root := registered[code]; root != nil {
		return Wrap(root, log)
	}
	return Wrap(&Error{code: code, desc: "unknown"}, log)
}

func abciCode(err error) uint32 {
	code := internalCode
	walk(err, func(layer error) bool {
		c, ok := layer.(interface{ ABCICode() uint32 })
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}
