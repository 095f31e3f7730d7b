// Package profile owns the UserProfile aggregate: the delivery addresses a
// registered account keeps on file. A profile holds at most one default
// address; setting a new default clears the previous one. All aggregate
// methods are copy-on-write.
package profile
