// Package sample owns the Sample aggregate: a named record with an optional
// description, a lifecycle status, and audit stamps. Creation runs through
// the validate / draft / save pipeline; updates go through validating
// copy-on-write methods, so an invalid change never leaves a half-mutated
// aggregate behind.
package sample
