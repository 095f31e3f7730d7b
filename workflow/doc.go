// Package workflow is the step engine underneath every shopflow business
// process. A workflow is a fixed, ordered pipeline of typed steps wired once
// at construction; each step consumes the previous stage value and produces
// the next, and the pipeline stops at the first failing step.
//
// Failures are plain values, not panics: every domain outcome a caller can
// observe is a [Failure] carrying a [Kind] tag, the process that wrapped it,
// and the underlying cause. There is no retry machinery here and none should
// be added — re-executing a failed workflow is always the caller's decision.
package workflow
