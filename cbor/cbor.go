// Package cbor wraps github.com/fxamacker/cbor with the encoding discipline
// the registries rely on: Core Deterministic Encoding per RFC 8949, so that
// a record always serializes to the same bytes, and decoding that rejects
// duplicate map keys and unbounded containers.
package cbor

import (
	"github.com/fxamacker/cbor/v2" // imports as cbor
)

// Containers larger than this are rejected on decode.
const MaxContainerElements = 1024 * 64

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
		NaNConvert:    cbor.NaNConvert7e00,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,
		TagsMd:        cbor.TagsForbidden,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		IndefLength:      cbor.IndefLengthForbidden,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxContainerElements,
		MaxMapPairs:      MaxContainerElements,
		TagsMd:           cbor.TagsForbidden,
		TimeTag:          cbor.DecTagIgnored,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes src to deterministic CBOR.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes CBOR in data into dst. Unknown fields are tolerated for
// forward compatibility.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}
