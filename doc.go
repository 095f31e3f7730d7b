// Package shopflow is the application core of a commerce backend: account
// login and signup, legacy user login, user registration, sample records,
// and user profiles, each implemented as a fixed workflow of typed steps.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// shopflow is the public surface. It exposes [Engine], [Builder], [Config],
// the sentinel error taxonomy, and request/result payloads. Business rules
// live in the bounded-context packages (auth, account, user, sample,
// profile, shopping, logistics); the step machinery lives in workflow;
// persistence lives in store. Engine methods translate workflow failure
// kinds into the sentinel errors, always preserving the cause chain.
//
// # What this package must NOT do
//
//   - Expose Redis clients or storage encodings in its public API.
//   - Retry failed workflows. A failure returns immediately; running the
//     process again is the caller's decision.
//   - Issue a token for any principal that did not pass password
//     verification in the same execution.
package shopflow
