// Package domain contains the core value types of the spotlight overlay:
// searchable items, search sections, overlay configuration, and the UI
// state enumeration. These types carry no behaviour beyond simple
// accessors and are shared by the services layer and the adapters.
package domain
