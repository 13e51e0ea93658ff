// Package error provides the structured error type of meinRECHENWERK.
//
// Package: error
// Title: mRW Error Handling Framework
// Description: Structured errors with codes, severities, operation names and
//              details. Every calculator reports failures through this type so
//              the CLI, the HTTP API and the journal can classify them the
//              same way.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-28
//
// Usage:
//
//	err := error.New("reference date precedes birth date").
//		WithCode(error.CodeInvalidDate).
//		WithOperation("Decompose").
//		WithDetail("birth", "2030-01-01")
//
//	if error.HasCode(err, error.CodeInvalidDate) {
//		// reject the request
//	}
//
// Errors compare by code under errors.Is, so a package level sentinel with
// the same code matches any error produced for that code.
package error
