package signalbox

import (
	"errors"
	"fmt"
)

var (
	ErrUndeclaredSignal = errors.New("signal not declared with Emits")
	ErrUndeclaredInvoke = errors.New("name not declared with Invokes")
	ErrUnresolved       = errors.New("path does not resolve")
	ErrNotObservable    = fmt.Errorf("%w to an observable", ErrUnresolved)
	ErrMalformedAddress = errors.New("malformed signal address")
	ErrNameTaken        = errors.New("view name already registered")
)
