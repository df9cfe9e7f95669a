// Package services implements the overlay core behind the driving
// port: the query debounce/cancellation pipeline, the navigation and
// selection state machine, the section registry, and selection commit.
// All temporal behaviour of the overlay lives here; adapters stay
// purely presentational.
package services
