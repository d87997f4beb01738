// Package user holds the User entity, its Repository contract and the Service
// implementing registration, profile updates, cursor listing, login and
// refresh-token rotation.
//
// A Service is bound to one schema: callers build it per request from the
// repositories of the routed scope.
package user
