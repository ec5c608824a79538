// Package mediagate implements the signed media access gateway: per-request
// verification of HMAC-signed capability tokens bound to a single object key,
// and serving of the referenced object bytes (whole or a single byte range)
// with a caching policy derived from the token's access mode.
//
// The gateway is a pure verifier. Tokens are minted by the account service
// using the same shared secret; this package never issues them in production
// and keeps no state between requests. Revocation happens only through the
// token's expiry field.
//
// # Token Wire Format
//
//	base64url(JSON({k, m?, e?})) + "." + base64url(HMAC-SHA256(secret, payload))
//
// both segments unpadded. The payload carries the object key (k), an optional
// access mode (m, "pub" or "priv", default "priv") and an optional expiry as
// Unix seconds (e). The mode only selects the Cache-Control policy; it never
// grants or denies access.
//
// # Key Components
//
//   - Verifier: token decoding, signature and claim verification
//   - ObjectStore: interface for ranged object retrieval
//   - ParseRange: single-range HTTP Range header parsing
//
// See the http package for the request dispatcher and the filesystem and s3
// packages for the store backends.
package mediagate
