// Package driven defines the outbound ports of the overlay core: the
// capabilities it requires from data source collaborators. Adapters
// under internal/adapters/driven implement these interfaces.
package driven
