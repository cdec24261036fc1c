// Package extraction drives thumbnail extraction for one run.
//
// Scheduler feeds packets of sample offsets to a Backend strictly one at a
// time, pausing between packets and stopping at the first failure. Extractor
// is the pipeline stage that plans the offsets, splits them into packets, and
// records the produced filenames on the RunContext.
package extraction
