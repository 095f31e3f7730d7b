// Package jwt issues and verifies the access tokens shopflow hands out
// after a successful login. Tokens carry registered claims only (subject,
// issuer, iat, exp); authorization data never rides inside them.
package jwt
