// Package main provides the entry point for the mepower CLI.
//
// mepower scrapes the Central Maine Power outage portal and writes one JSON
// object per affected street to stdout.
//
// Usage:
//
//	mepower > outages.json
//	mepower | jq .
//
// See --help for all available options.
package main

func main() {
	Execute()
}
