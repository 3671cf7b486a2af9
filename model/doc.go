// Package model holds the in-memory representation of Schematron constructs:
// rules with their assertions, extension references, bound variables, includes
// and foreign content, plus the minimal schema/pattern containers needed to
// compile and execute them.
//
// Instances are built append-only while a schema is read and are treated as
// immutable afterwards. Structural invariants are checked through two
// entry points with identical predicates but different control flow:
//
//   - IsValid gates execution and stops at the first violation.
//   - ValidateCompletely reports every violation in one pass and powers
//     diagnostic tooling.
//
// Violations are reported through an injected ErrorHandler; whether a
// violation aborts or is merely recorded is the handler's choice.
package model
