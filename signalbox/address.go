package signalbox

import (
	"fmt"
	"strings"

	"github.com/delaneyj/signalbox/pkg/dotpath"
)

// Address points at a signal on a component in the namespace, written "dot.path:signal".
type Address struct {
	Path   string
	Signal string
}

// ParseAddress splits on the first ':' into path and signal.
func ParseAddress(s string) (Address, error) {
	path, sig, ok := strings.Cut(s, ":")
	if !ok || path == "" || sig == "" {
		return Address{}, fmt.Errorf("%w: %q", ErrMalformedAddress, s)
	}
	for _, seg := range dotpath.Split(path) {
		if seg == "" {
			return Address{}, fmt.Errorf("%w: empty segment in %q", ErrMalformedAddress, s)
		}
	}
	return Address{Path: path, Signal: sig}, nil
}

func (a Address) String() string {
	return a.Path + ":" + a.Signal
}

func (a Address) Segments() []string {
	return dotpath.Split(a.Path)
}
