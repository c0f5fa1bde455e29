// Package diagnostic collects structured errors and warnings produced while
// validating dataset schema declarations.
//
// Validation never stops at the first problem: every issue is recorded with a
// stable code, the dataset it belongs to and the offending field, and the
// collection is turned into a single error once validation is done.
package diagnostic
