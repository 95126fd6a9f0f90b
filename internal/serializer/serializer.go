// Package serializer transforms argument bytes through a named codec before
// they are encoded, e.g. `SET key value#:gzip` stores the gzipped value.
package serializer

import (
	"fmt"
	"strings"

	"github.com/cosmez/redisargs-go/internal/args"
)

// Serializer converts bytes to their stored form and back.
type Serializer interface {
	Serialize([]byte) ([]byte, error)
	Deserialize([]byte) ([]byte, error)
}

// Names lists the codecs Get understands.
var Names = []string{"base64", "gzip", "snappy"}

// Get returns a Serializer by name. Unknown names are an error so a typo in
// a modifier never silently sends the raw value.
func Get(name string) (Serializer, error) {
	switch strings.ToLower(name) {
	case "base64":
		return base64Serializer{}, nil
	case "gzip":
		return gzipSerializer{}, nil
	case "snappy":
		return snappySerializer{}, nil
	default:
		return nil, fmt.Errorf("unknown serializer: %q", name)
	}
}

// Encode runs the bytes of r through the named codec and returns them as a
// new argument.
func Encode(name string, r args.Rawable) (args.Rawable, error) {
	codec, err := Get(name)
	if err != nil {
		return nil, err
	}
	out, err := codec.Serialize(r.Raw())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(name), err)
	}
	return args.Raw(out), nil
}
