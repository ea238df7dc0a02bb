// Package pass reconciles a visitor's declared needs with a decoder's single
// forward pass over its input.
//
// Key capabilities:
//   - Buffering through an in-memory tree for uniqueness, derived
//     destination descriptors and header metadata found in content
//   - Mark/reset replay for visitors that need multiple passes
//   - Fail-fast detection of undeclared pass requests
package pass
