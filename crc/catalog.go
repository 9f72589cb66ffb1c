package crc

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/pkg/errors"
)

var (
	catalogMutex sync.Mutex
	catalog      = make(map[string]Polynomial)
)

// Register adds a named polynomial to the catalog.
func Register(p Polynomial) {
	catalogMutex.Lock()
	defer catalogMutex.Unlock()

	if p.Value == 0 {
		panic("crc: registered polynomial is zero")
	}
	name := strings.ToLower(p.Name)
	if _, dup := catalog[name]; dup {
		panic(fmt.Sprintf("crc: polynomial already registered (%s)", p.Name))
	}
	catalog[name] = p
}

// Lookup returns a registered polynomial by name, otherwise the name is
// parsed as a literal.
func Lookup(name string) (Polynomial, error) {
	catalogMutex.Lock()
	p, exists := catalog[strings.ToLower(name)]
	catalogMutex.Unlock()

	if exists {
		return p, nil
	}

	bf, err := bitfield.Parse(name)
	if err != nil {
		return Polynomial{}, errors.Wrapf(err, "invalid polynomial: %q", name)
	}
	return NewPolynomial(bf.String(), bf.Value)
}

// Names returns the registered polynomial names in sorted order.
func Names() (names []string) {
	catalogMutex.Lock()
	defer catalogMutex.Unlock()

	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// x^6 + x^4 + x^3 + x + 1
	Register(Polynomial{"demo", 0x5B})
	Register(Polynomial{"crc8", 0x107})
	Register(Polynomial{"ibm", 0x18005})
	Register(Polynomial{"ccitt", 0x11021})
	// SCM checksum
	Register(Polynomial{"bch", 0x16F63})
	Register(Polynomial{"crc32", 0x104C11DB7})
}
