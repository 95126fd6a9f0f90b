package serializer

import (
	"bytes"
	"testing"

	"github.com/cosmez/redisargs-go/internal/args"
)

func TestSerializerRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
	}{
		{
			name:  "Plain ASCII",
			input: []byte("Hello, World! This is a test string."),
		},
		{
			name:  "Binary Bytes",
			input: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD, 0x00},
		},
		{
			name:  "Empty Slice",
			input: []byte{},
		},
	}

	for _, codecName := range Names {
		t.Run(codecName, func(t *testing.T) {
			codec, err := Get(codecName)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", codecName, err)
			}

			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					// Serialize
					serialized, err := codec.Serialize(tc.input)
					if err != nil {
						t.Fatalf("Serialize failed: %v", err)
					}

					// Deserialize
					deserialized, err := codec.Deserialize(serialized)
					if err != nil {
						t.Fatalf("Deserialize failed: %v", err)
					}

					// Compare
					if !bytes.Equal(tc.input, deserialized) {
						t.Errorf("Round-trip failed.\nExpected: %v\nGot:      %v", tc.input, deserialized)
					}
				})
			}
		})
	}
}

func TestGetUnknownSerializer(t *testing.T) {
	codec, err := Get("unknown")
	if err == nil {
		t.Error("Expected error for unknown serializer, got nil")
	}
	if codec != nil {
		t.Errorf("Expected nil codec for unknown serializer, got %T", codec)
	}
}

func TestEncode(t *testing.T) {
	got, err := Encode("BASE64", args.FromString("value"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(got.Raw()) != "dmFsdWU=" {
		t.Errorf("Expected %q, got %q", "dmFsdWU=", got.Raw())
	}

	for _, name := range Names {
		encoded, err := Encode(name, args.FromString("hello hello hello"))
		if err != nil {
			t.Fatalf("Encode(%q) failed: %v", name, err)
		}
		codec, _ := Get(name)
		decoded, err := codec.Deserialize(encoded.Raw())
		if err != nil {
			t.Fatalf("Deserialize(%q) failed: %v", name, err)
		}
		if string(decoded) != "hello hello hello" {
			t.Errorf("%s: expected original value back, got %q", name, decoded)
		}
	}
}

func TestEncodeUnknownCodec(t *testing.T) {
	if _, err := Encode("zstd", args.FromString("v")); err == nil {
		t.Error("Expected error for unknown codec")
	}
}

func TestGzipIsDeterministic(t *testing.T) {
	ser, err := Get("gzip")
	if err != nil {
		t.Fatal(err)
	}
	first, err := ser.Serialize([]byte("same input"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := ser.Serialize([]byte("same input"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Expected identical output, got %x and %x", first, second)
	}
}
