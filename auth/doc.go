// Package auth owns the Account aggregate and the two authentication
// business processes: login (find account, verify password, issue token)
// and signup (check email uniqueness, create account with a hashed email
// credential).
//
// Both processes are fixed step pipelines over package workflow. Lookup and
// verification are deliberately separate stages: a missing account and a
// wrong password are distinct outcomes, and the token step is unreachable
// unless verification passed.
package auth
