package middleware

import (
	"net/http"
	"testing"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`[{"id_menu":1,"id_plat":7}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDecodePayload_Garbage(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte("short")); ok {
		t.Error("truncated payload must not decode")
	}
	// Header length pointing past the end of the buffer.
	bad := make([]byte, 8)
	bad[7] = 0xFF
	if _, _, _, ok := decodePayload(bad); ok {
		t.Error("oversized header length must not decode")
	}
}
