// Package match ranks known names by similarity to a misspelled one.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Rank / Suggest: order candidate names by similarity
package match
