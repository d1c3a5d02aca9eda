/*
Package session hosts many playgrounds at once.

Each playground handles one event at a time. The Manager keeps a
reference-counted mutex per session ID so that concurrent requests for the
same session queue up, while requests for different sessions run in
parallel. Locks are dropped as soon as no caller holds them.
*/
package session
