// Package orchestration coordinates factorial computation and digit
// summation, including concurrent execution of several engines for
// comparison runs. It decouples business logic from presentation via
// ProgressReporter and ResultPresenter interfaces.
package orchestration
