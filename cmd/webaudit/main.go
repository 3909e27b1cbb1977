// Package main provides the entry point for the webaudit CLI.
//
// webaudit sends public web pages to a remote audit service and reports
// their performance, SEO, accessibility and best-practices scores together
// with the detected issues.
//
// Usage:
//
//	webaudit analyze <url>...
//	webaudit serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
