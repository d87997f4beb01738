// Package redisstore stores refresh tokens in Redis.
//
// Keys are namespaced as <prefix>:<schema>, so a token issued in one tenant
// schema is unknown in every other. Tokens expire on their own through the
// key TTL.
package redisstore
