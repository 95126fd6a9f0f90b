package resp_test

import (
	"bytes"
	"testing"

	tresp "github.com/tidwall/resp"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/params"
	"github.com/cosmez/redisargs-go/internal/protocol"
	"github.com/cosmez/redisargs-go/internal/resp"
)

// Requests are checked against an independent RESP implementation, both
// for the exact bytes and for what a generic reader sees.
func TestEncodeMatchesGenericWriter(t *testing.T) {
	tests := []struct {
		name string
		args *command.Arguments
	}{
		{"Ping", command.New(protocol.PING)},
		{"Range", command.New(protocol.ZRANGE).Key("z").AddParams(params.NewZRangeByScore(0.5, 10).Rev().Limit(0, 3))},
		{"Binary", command.New(protocol.SET).Key("k").Add(args.FromBytes([]byte{0x00, '\r', '\n', 0xff}))},
		{"Empty", command.New(protocol.SET).Key("k").AddObject("")},
		{"Unicode", command.New(protocol.ECHO).AddObject("héllo wörld")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var values []tresp.Value
			for r := range tt.args.All() {
				values = append(values, tresp.BytesValue(r.Raw()))
			}
			want, err := tresp.ArrayValue(values).MarshalRESP()
			if err != nil {
				t.Fatal(err)
			}

			got := resp.Encode(tt.args)
			if !bytes.Equal(got, want) {
				t.Errorf("Expected %q, got %q", want, got)
			}

			v, _, err := tresp.NewReader(bytes.NewReader(got)).ReadValue()
			if err != nil {
				t.Fatalf("generic reader failed: %v", err)
			}
			if v.Type() != tresp.Array || len(v.Array()) != tt.args.Size() {
				t.Fatalf("Expected an array of %d, got %v", tt.args.Size(), v.Type())
			}
			for i, elem := range v.Array() {
				if !bytes.Equal(elem.Bytes(), tt.args.Get(i).Raw()) {
					t.Errorf("Argument %d: expected %q, got %q", i, tt.args.Get(i).Raw(), elem.Bytes())
				}
			}
		})
	}
}
