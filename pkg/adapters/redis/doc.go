// Package redis provides a durable session store and a distributed session
// lock backed by Redis, for running several playground servers behind one
// load balancer.
package redis
