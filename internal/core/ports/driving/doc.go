// Package driving defines the inbound port of the overlay core: the
// surface UI collaborators drive and observe. The services layer
// implements it; the TUI adapter consumes it.
package driving
