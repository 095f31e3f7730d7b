// Package share holds the value objects and collaborators used by more than
// one bounded context: validated emails and postal addresses, audit stamps,
// and the IDGenerator/Clock seams that keep entity construction
// deterministic under test.
package share
