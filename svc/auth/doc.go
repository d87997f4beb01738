// Package auth provides the credential primitives used by the user service:
// a JWT TokenService issuing access/refresh pairs, a bcrypt PasswordHasher
// and an HTTP middleware exposing verified access claims to handlers.
//
// Access tokens carry the user's profile, tenant, role and permissions with
// type "access". Refresh tokens carry only the subject, a unique jti and
// type "refresh"; the jti is what refresh-token stores persist.
package auth
