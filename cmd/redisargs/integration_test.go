//go:build integration

package main

import (
	"bytes"
	"os/exec"
	"testing"
)

func TestEncodeRawCommand(t *testing.T) {
	cmd := exec.Command("go", "run", "./cmd/redisargs", "encode", "--raw", "ZRANGE", "z", "0", "-1")
	cmd.Dir = "../../" // Run from the root of the project
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v\nStderr: %s", err, stderr.String())
	}

	expected := "*4\r\n$6\r\nZRANGE\r\n$1\r\nz\r\n$1\r\n0\r\n$2\r\n-1\r\n"
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
}
