// Package resolver implements the dynamic configuration resolver: it backs
// named process parameters with values stored in a distributed key-value
// coordination service, reconciles them against ambient environment values
// and declared defaults, and keeps them live via change notifications.
//
// The main entry point is [Resolver.Initialize], which walks the parameter
// manifest once, applies the fallback chain per entry, optionally back-fills
// missing remote keys within the service's writable scope, and registers
// per-key watches. Resolved values are read from the [Store]; when mirroring
// is enabled they are additionally copied into the ambient environment sink.
package resolver
