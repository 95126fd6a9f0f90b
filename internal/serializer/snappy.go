package serializer

import "github.com/golang/snappy"

type snappySerializer struct{}

func (snappySerializer) Serialize(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (snappySerializer) Deserialize(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
