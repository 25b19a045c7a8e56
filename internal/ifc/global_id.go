package ifc

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ifcstep/ifcstep/internal/step"
)

// the IFC flavour of base64: digits first and '_', '$' as the extra symbols
const globalIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

const globalIDLength = 22

// GlobalID is the 22 character compressed form of a 128 bit UUID that every
// rooted IFC entity carries.
type GlobalID string

// NewGlobalID compresses a fresh random UUID.
func NewGlobalID() GlobalID {
	return GlobalIDFromUUID(uuid.New())
}

func GlobalIDFromUUID(u uuid.UUID) GlobalID {
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])
	var out [globalIDLength]byte
	for x := globalIDLength - 1; x >= 1; x-- {
		out[x] = globalIDAlphabet[lo&63]
		lo = lo>>6 | hi<<58
		hi >>= 6
	}
	// two bits remain for the first character
	out[0] = globalIDAlphabet[lo&3]
	return GlobalID(out[:])
}

// UUID expands the identifier back into the UUID it encodes.
func (g GlobalID) UUID() (uuid.UUID, error) {
	var u uuid.UUID
	if len(g) != globalIDLength {
		return u, fmt.Errorf("global id %q has %d characters, expected %d", string(g), len(g), globalIDLength)
	}
	var hi, lo uint64
	for x := 0; x < globalIDLength; x++ {
		v := strings.IndexByte(globalIDAlphabet, g[x])
		if v < 0 || (x == 0 && v > 3) {
			return u, fmt.Errorf("global id %q has invalid character %q at %d", string(g), g[x], x)
		}
		hi = hi<<6 | lo>>58
		lo = lo<<6 | uint64(v)
	}
	binary.BigEndian.PutUint64(u[:8], hi)
	binary.BigEndian.PutUint64(u[8:], lo)
	return u, nil
}

func (g GlobalID) Valid() bool {
	_, err := g.UUID()
	return err == nil
}

func (g GlobalID) EncodeStep(e *step.Encoder) {
	e.Label(string(g))
}

// DecodeGlobalID accepts any string. Exporters in the wild write
// malformed ids and the value is still useful as an opaque key.
func DecodeGlobalID(d *step.Decoder) GlobalID {
	return GlobalID(step.DecodeLabel(d))
}
