// Package preflight runs the environment checks behind `contactsheet status`:
// required binaries, directory permissions, and notification reachability.
package preflight
