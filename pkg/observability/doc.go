/*
Package observability turns playground lifecycle events into metrics and logs.

Both Metrics.Hooks and LoggingHooks return domain.LifecycleHooks; combine
them with Merge and pass the result to sail.WithLifecycleHooks.
*/
package observability
