// Package tree provides an in-memory mapping aggregate.
//
// A Tree is a visitor that indexes everything it receives by element
// identity, merging repeated elements, and can replay its content into any
// other visitor with Accept. The pass controller uses it as a buffering
// stage when a visitor demands element uniqueness or derived descriptors.
package tree
