// Command photosorter copies photos and videos from a source tree into a
// library organized as <target>/<year>/<month>/<day>/ by modification date.
//
// The root command performs a sort. Subcommands manage the configuration
// file and list the recognized media extensions.
package main
