// Package user owns the User aggregate of the older registration path: a
// person with names, a postal address, a telephone number, and a hashed
// password, registered through the check-uniqueness / hash / create
// pipeline.
package user
