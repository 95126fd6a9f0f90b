package resp_test

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/cosmez/redisargs-go/internal/resp"
)

func TestReadCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  error
	}{
		{
			name:     "Single Argument",
			input:    "*1\r\n$4\r\nPING\r\n",
			expected: []string{"PING"},
		},
		{
			name:     "Range Command",
			input:    "*3\r\n$6\r\nZRANGE\r\n$10\r\n3000000000\r\n$10\r\n3000000099\r\n",
			expected: []string{"ZRANGE", "3000000000", "3000000099"},
		},
		{
			name:     "Empty And Binary Arguments",
			input:    "*3\r\n$3\r\nSET\r\n$0\r\n\r\n$3\r\n\x00\r\n\r\n",
			expected: []string{"SET", "", "\x00\r\n"},
		},
		{
			name:    "Not An Array",
			input:   "+OK\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Invalid Count",
			input:   "*abc\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Empty Array",
			input:   "*0\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Null Bulk",
			input:   "*1\r\n$-1\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Bad Terminator",
			input:   "*1\r\n$4\r\nPINGxx",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Bare LF",
			input:   "*1\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Truncated",
			input:   "*2\r\n$4\r\nPING\r\n",
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "Count Above Int Range",
			input:   "*92233720368547758070\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Huge Count",
			input:   "*9223372036854775807\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Count Over Limit",
			input:   "*1048577\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Large Count Without Arguments",
			input:   "*1000000\r\n",
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "Huge Bulk Length",
			input:   "*1\r\n$9223372036854775807\r\nx\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Bulk Length Over Limit",
			input:   "*1\r\n$536870913\r\nx\r\n",
			wantErr: resp.ErrProtocol,
		},
		{
			name:    "Large Bulk Length Truncated",
			input:   "*1\r\n$536870912\r\nx\r\n",
			wantErr: io.ErrUnexpectedEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resp.ReadCommand(bufio.NewReader(strings.NewReader(tt.input)))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadCommand failed: %v", err)
			}

			strs := make([]string, len(got))
			for i, b := range got {
				strs[i] = string(b)
			}
			if !reflect.DeepEqual(strs, tt.expected) {
				t.Errorf("Expected %q, got %q", tt.expected, strs)
			}
		})
	}
}

func TestReadCommandLargeBulk(t *testing.T) {
	payload := strings.Repeat("v", 200*1024)
	input := "*2\r\n$3\r\nSET\r\n$" + strconv.Itoa(len(payload)) + "\r\n" + payload + "\r\n"

	got, err := resp.ReadCommand(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadCommand failed: %v", err)
	}
	if len(got) != 2 || string(got[1]) != payload {
		t.Errorf("Expected the %d byte payload back, got %d arguments", len(payload), len(got))
	}
}

func TestReadCommandEOF(t *testing.T) {
	_, err := resp.ReadCommand(bufio.NewReader(strings.NewReader("")))
	if err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}
