// Package password hashes and verifies raw passwords with argon2id,
// producing PHC-formatted strings that embed their own parameters. The
// Hasher satisfies the hashing collaborator the auth and user workflows
// depend on.
package password
