// Package main hosts the nfcrename CLI entrypoint and command graph.
//
// The root command is what shell "act on selected items" integrations call:
// each selected path arrives as an argument, optionally with the recursive
// marker, and is handed to the invocation gate. The remaining commands are
// maintenance tools for people: configuration scaffolding, queue
// inspection, a status report, and a directory watcher.
package main
