// Package audit implements the request lifecycle of a website audit.
//
// A Lifecycle is the single writer of one session's state. Submitting a
// URL moves it through Validating and Requesting to either Success or
// Error:
//
//	Idle ──submit──> Validating ──invalid──> Error
//	                     │
//	                   valid
//	                     v
//	                Requesting ──2xx + well-formed──> Success
//	                     │
//	                     └──non-2xx / transport / malformed──> Error
//
// Success and Error are left only by a new submission (or Reset). A new
// submission while a request is in flight cancels it; every submission
// carries a sequence number and a response that arrives for a superseded
// sequence number is discarded, so the last submission always wins.
//
// BatchRunner analyzes several URLs concurrently, one Lifecycle per URL.
package audit
