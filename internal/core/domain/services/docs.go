// Package services holds the pure logistics rules that span more than one
// aggregate.
//
// ConsistencyGuard answers "may this box or container still change?" given the
// ownership chain loaded by the caller. TransitionEngine applies one logistics
// operation to the loaded aggregates, cascading to the boxes and orders it
// affects, and reports what changed as a Cascade. Neither performs I/O; the
// command handlers load the chain and persist the Cascade inside one unit of
// work.
package services
