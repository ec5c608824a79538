// Package http implements the media gateway's request dispatcher.
//
// A single route family is exposed:
//
//	GET  /m/<object key>?t=<token>
//	HEAD /m/<object key>?t=<token>
//
// Every other method or path answers 404. The handler runs a linear gate
// sequence with no backtracking: secret presence, key extraction, token
// presence, token verification, Range parsing, object fetch, response
// assembly. Each gate exits directly to a terminal JSON error response
// with a machine-readable reason code:
//
//	503 worker_not_configured   no signing secret at startup (fail closed)
//	404 not_found               bad path/method, or object missing
//	400 bad_request             empty object key
//	401 restricted              t query parameter absent
//	401 forbidden               token malformed, forged, or key-mismatched
//	401 expired                 token valid but past its expiry
//
// Successful responses always carry ETag and Accept-Ranges, a Cache-Control
// policy chosen by the verified token's mode, and Content-Range on partial
// (206) responses. The gateway keeps no state between requests.
package http
