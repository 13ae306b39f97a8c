// Package box models a physical carton that groups orders in China.
//
// A box is mutable (orders may be added or removed, and the box may be moved
// between containers) only while its status is below InTransit. From InTransit
// on the box and everything inside it is frozen until it is received in
// Venezuela.
package box
