// Package convert maps expectations to and from the JSON-compatible structure
// used on the Phiremock wire (maps, slices, strings and numbers as produced
// by encoding/json).
//
// Zero values are omitted on encode and restored on decode, so
// Decode(Encode(e)) is equal to e for every expectation the builders produce.
package convert
