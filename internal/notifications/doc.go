// Package notifications delivers run outcomes via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Long transcriptions finish while nobody is watching the terminal;
// a push notification closes that gap without coupling the pipeline to any
// particular transport.
//
// Extend this package if you need alternative transports; pipeline code
// depends only on the simple Service interface.
package notifications
