// Package kernel holds the value objects shared by orders, boxes and containers:
// ID for row identifiers and Money for quotes.
package kernel
