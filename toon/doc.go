// Package toon implements TOON (Token-Oriented Object Notation), a
// line-oriented, indentation-structured, human-readable data-interchange
// format optimized for minimal token count when embedding structured data
// in language-model prompts.
//
// TOON expresses the same value universe as JSON — nested mappings,
// ordered sequences, and four scalar kinds (string, number, boolean,
// null) — but achieves compactness by using indentation instead of
// braces, encoding homogeneous sequences of mappings as a header plus
// delimiter-separated rows (a "tabular array"), and inlining short
// primitive sequences on the header line.
//
// # Example
//
//	users[2]{id,name,role}:
//	  1,Alice,admin
//	  2,Bob,user
//
// decodes to a Mapping with one key, "users", holding a Sequence of two
// Mappings.
//
// Decode and Encode are the two public entry points; both are purely
// sequential and hold no state across calls.
package toon
