// Package order models a client purchase moving through the import pipeline.
//
// Status enumerates the thirteen pipeline states and holds the advance table:
// the only single-step moves staff may request directly. Quoting, packing,
// containerizing and shipping have their own transitions because they are
// driven by dedicated operations and, for the last three, by the box or
// container the order travels in.
//
// Order is the aggregate root. Its transition methods either apply the whole
// change or return an *errs.RejectionError and leave the order untouched.
package order
