// Package match ranks known identifiers by similarity to user input.
//
// Key functions:
//   - Normalize: folds case and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidates for "did you mean" hints
package match
