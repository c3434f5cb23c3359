// Package cli implements the interactive memento client: a REPL over the
// session manager and the journal service. It renders whatever state those
// two components produce and issues their public operations; it holds no
// state of its own beyond the input reader.
package cli
