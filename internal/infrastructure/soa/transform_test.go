package soa

import (
	"net/http"
	"testing"
)

func rawWith(headers http.Header, body string) RawResponse {
	return RawResponse{Status: 200, Headers: headers, Body: []byte(body)}
}

func TestTransformStripsVolatileHeaders(t *testing.T) {
	raw := rawWith(http.Header{
		"Content-Type": {"application/json"},
		"Date":         {"Tue, 26 Aug 2025 10:00:00 GMT"},
		"X-Request-Id": {"abc-123"},
		"Traceparent":  {"00-aaa-bbb-01"},
		"Etag":         {`"xyz"`},
	}, `{}`)

	canonical := Transform(raw)
	if got := canonical.Headers.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type must survive, got %q", got)
	}
	for _, h := range []string{"Date", "X-Request-Id", "Traceparent", "Etag"} {
		if canonical.Headers.Get(h) != "" {
			t.Errorf("header %s must be stripped", h)
		}
	}
}

func TestTransformStripsVolatileFields(t *testing.T) {
	raw := rawWith(nil, `{"holdings":[],"generated_at":"2025-08-26T10:00:00Z","request_id":"r1","nonce":"n1"}`)

	canonical := Transform(raw)
	if string(canonical.Body) != `{"holdings":[]}` {
		t.Fatalf("unexpected canonical body %s", canonical.Body)
	}
}

// Two fetches of the same statement differ only in per-request noise and
// must fingerprint identically.
func TestFingerprintStableAcrossRefetch(t *testing.T) {
	first := rawWith(http.Header{
		"Date":         {"Tue, 26 Aug 2025 10:00:00 GMT"},
		"X-Request-Id": {"req-1"},
	}, `{"statement_id":"S1","holdings":[{"scheme_name":"A"}],"generated_at":"2025-08-26T10:00:00Z","nonce":"111"}`)

	second := rawWith(http.Header{
		"Date":         {"Wed, 27 Aug 2025 18:30:00 GMT"},
		"X-Request-Id": {"req-2"},
	}, `{"nonce":"222","generated_at":"2025-08-27T18:30:00Z","holdings":[{"scheme_name":"A"}],"statement_id":"S1"}`)

	a := Transform(first).Fingerprint()
	b := Transform(second).Fingerprint()
	if a != b {
		t.Fatalf("fingerprints differ for identical content:\n%s\n%s", a, b)
	}
}

// Key order inside nested objects is provider noise too, not content.
func TestFingerprintStableAcrossNestedKeyReorder(t *testing.T) {
	first := rawWith(nil, `{"holdings":[{"scheme_name":"A","current_value":"1,50,000.10","invested":"100"}]}`)
	second := rawWith(nil, `{"holdings":[{"invested":"100","current_value":"1,50,000.10","scheme_name":"A"}]}`)

	a := Transform(first).Fingerprint()
	b := Transform(second).Fingerprint()
	if a != b {
		t.Fatalf("nested key reorder must not change the fingerprint:\n%s\n%s", a, b)
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	a := Transform(rawWith(nil, `{"holdings":[{"scheme_name":"A","current_value":"100"}]}`)).Fingerprint()
	b := Transform(rawWith(nil, `{"holdings":[{"scheme_name":"A","current_value":"101"}]}`)).Fingerprint()
	if a == b {
		t.Fatalf("different statement content must fingerprint differently")
	}
}

func TestTransformPassesNonJSONBodyThrough(t *testing.T) {
	raw := rawWith(http.Header{"Date": {"now"}}, `not json`)
	canonical := Transform(raw)
	if string(canonical.Body) != "not json" {
		t.Fatalf("non-JSON body must pass through untouched, got %q", canonical.Body)
	}
	if canonical.Headers.Get("Date") != "" {
		t.Fatalf("headers are stripped regardless of body type")
	}
}
