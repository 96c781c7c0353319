// Package server wires and runs the daemon's ops HTTP server.
//
// It provides orchestration for the server lifecycle, including startup,
// signal handling, graceful shutdown, and release of resolver and
// coordination-client resources via shutdown hooks.
package server
