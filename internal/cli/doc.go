// Package cli implements the interactive shell of the dukabook client.
//
// The shell is a plain read–eval–print loop over stdin: one command per
// line, interactive prompts for the fields a command needs. Before setup
// only 'setup' is available; after login the bookkeeping commands open up.
package cli
