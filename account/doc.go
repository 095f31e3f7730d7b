// Package account carries the older login path that authenticates against
// the User aggregate instead of Account credentials. The flow is the same
// fixed pipeline as package auth — find, verify, issue — with lookup and
// verification as separate stages, so an unknown email and a wrong password
// stay distinguishable here too.
package account
