// Package io provides JSON import and export for generation results.
//
// # JSON Format
//
// A result document records the shape of the result, the depth bound it was
// generated with, and exactly one payload field matching the shape:
//
//	{
//	  "shape": "set",
//	  "depth": 2,
//	  "strings": ["01", "10"]
//	}
//
// The payload fields are:
//
//   - strings: for "set" (ascending) and "list" (generation order) results
//   - counts: for "counts" results, an object of string to derivation count
//   - derivations: for "derivations" results, an object of string to a list
//     of derivation paths
//
// A derivation path is an array of records. Full records carry the rewrite
// position, low-memory records are the bare production:
//
//	{"pos": 1, "production": "0AA"}
//	"0AA"
//
// Documents holding low-memory paths set "low_memory": true so an empty
// result still round-trips to the same record kind.
//
// An optional "stats" object carries the engine counters.
//
// # Import
//
// Use [ImportJSON] to read a result from a file path, or [ReadJSON] to read
// from any io.Reader. Unknown shapes and payloads that do not match the shape
// are rejected with an INVALID_FORMAT error.
//
// # Export
//
// Use [ExportJSON] to write a result to a file, or [WriteJSON] to write to any
// io.Writer. Export followed by import yields an equal result.
package io
