// Package config holds the settings of a mepower run: the portal to scrape,
// how to fetch it, what to do with failing branches and how to write the
// result. Values come from defaults, an optional YAML file and command-line
// flags, in increasing order of precedence.
package config
