// Package model defines the data structures exchanged with the remote
// audit service.
//
// This package contains the following main types:
//   - AuditRequest: The body sent to the audit service for one URL
//   - AuditResult: The decoded report (Summary plus ordered Issues)
//   - Impact: The closed severity enum of an Issue
//
// A payload only becomes an AuditResult through DecodeAuditResult, which
// checks that every score is in [0,100] and every Impact is a known tier.
package model
