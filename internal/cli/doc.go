// Package cli wires together the Cobra command tree for the rnconfig binary.
//
// It defines the root command and its subcommands (config, dependency, check,
// watch, version), loads the tool settings, builds the discovery and
// resolution pipeline, and maps failures to exit codes.
package cli
