// Package container models a shipping container carrying boxes from China to
// Venezuela, together with the carrier tracking data recorded when it is sent.
package container
