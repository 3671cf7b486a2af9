// Package svrl models the Schematron Validation Report Language: the
// standardized XML grammar a validation run produces. The writer (Builder)
// and the reader (Read) share one vocabulary so that reports stay bit-exact
// for downstream consumers.
//
// Ordering inside a report is load-bearing: failed-assert and
// successful-report entries belong to the immediately preceding fired-rule,
// and fired-rules to the immediately preceding active-pattern. Read enforces
// this and returns a MalformedOutputError when the grammar is violated;
// that error class signals a defective validation program, not bad user
// input.
package svrl
