// Package operations orchestrates one pipeline run: the three
// cleaners execute concurrently over their own tables, then the join,
// derive and aggregate steps run strictly in dependency order. Each
// step's status and timing is tracked in a StepState and every run
// gets a uuid so its log lines correlate.
//
// The whole run is a one-shot batch transform over in-memory tables;
// there is no retry, cancellation beyond context, or incremental
// execution.
package operations
