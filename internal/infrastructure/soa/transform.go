package soa

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// volatileHeaders are per-request response headers that differ between
// two fetches of the same underlying statement. They are dropped before
// the response is treated as canonical.
var volatileHeaders = map[string]struct{}{
	"date":              {},
	"x-request-id":      {},
	"x-trace-id":        {},
	"traceparent":       {},
	"x-amzn-requestid":  {},
	"cf-ray":            {},
	"etag":              {},
	"set-cookie":        {},
	"x-ratelimit-reset": {},
}

// volatileFields are top-level body fields carrying per-request metadata
// rather than statement content.
var volatileFields = map[string]struct{}{
	"generated_at": {},
	"request_id":   {},
	"nonce":        {},
	"trace_id":     {},
	"server_time":  {},
}

// RawResponse is the untransformed provider response.
type RawResponse struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// CanonicalResponse is the transformed response: volatile headers and
// body fields removed, body re-marshalled with sorted keys. Two fetches
// of the same statement content produce byte-identical canonical bodies
// and therefore the same fingerprint.
type CanonicalResponse struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Transform normalizes a provider response. It is pure: no side effects,
// no dependence on transport retry or timeout policy. Non-JSON bodies
// pass through untouched apart from header stripping.
func Transform(raw RawResponse) CanonicalResponse {
	out := CanonicalResponse{
		Status:  raw.Status,
		Headers: make(http.Header, len(raw.Headers)),
		Body:    raw.Body,
	}

	keys := make([]string, 0, len(raw.Headers))
	for k := range raw.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, volatile := volatileHeaders[strings.ToLower(k)]; volatile {
			continue
		}
		out.Headers[k] = raw.Headers[k]
	}

	// Decoding into map[string]any re-marshals with sorted keys at
	// every nesting level, so a provider reordering keys inside nested
	// objects cannot change the canonical body. UseNumber keeps numeric
	// literals byte-exact across the round trip.
	dec := json.NewDecoder(bytes.NewReader(raw.Body))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil || dec.More() {
		return out
	}
	for field := range volatileFields {
		delete(body, field)
	}
	canonical, err := json.Marshal(body)
	if err != nil {
		return out
	}
	out.Body = canonical
	return out
}

// Fingerprint identifies canonical statement content.
func (c CanonicalResponse) Fingerprint() string {
	sum := sha256.Sum256(c.Body)
	return hex.EncodeToString(sum[:])
}
