// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

const testHashKey = "test-secret-key"

func TestHashString_MatchesHMAC(t *testing.T) {
	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write([]byte("payload"))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := HashString("payload", testHashKey); got != want {
		t.Errorf("Hash mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

func TestHashString_DifferentKeys(t *testing.T) {
	if HashString("payload", "key-one") == HashString("payload", "key-two") {
		t.Error("different keys must produce different hashes")
	}
}

func TestSignValue_RoundTrip(t *testing.T) {
	signed := SignValue("eyJraW5kIjoic3VjY2VzcyJ9", testHashKey)

	value, ok := VerifySignedValue(signed, testHashKey)
	if !ok {
		t.Fatal("expected signature to verify")
	}
	if value != "eyJraW5kIjoic3VjY2VzcyJ9" {
		t.Errorf("unexpected value %q", value)
	}
}

func TestSignValue_ValueWithSeparator(t *testing.T) {
	signed := SignValue("a.b.c", testHashKey)

	value, ok := VerifySignedValue(signed, testHashKey)
	if !ok || value != "a.b.c" {
		t.Fatalf("expected a.b.c, got %q ok=%v", value, ok)
	}
}

func TestVerifySignedValue_Rejects(t *testing.T) {
	signed := SignValue("state-123", testHashKey)

	tests := []struct {
		name  string
		input string
		key   string
	}{
		{"wrong key", signed, "other-key"},
		{"tampered value", strings.Replace(signed, "123", "124", 1), testHashKey},
		{"no separator", "state-123", testHashKey},
		{"non-hex signature", "state-123.zz", testHashKey},
		{"empty", "", testHashKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := VerifySignedValue(tt.input, tt.key); ok {
				t.Error("expected verification to fail")
			}
		})
	}
}
