// Package event defines the records the indexes and the narrative graph
// operate on: uuid-backed identifiers, precision-aware UTC timestamps,
// inclusive time ranges and the Event record itself.
//
// The index layers do not depend on Event directly. Anything satisfying
// the Located and Timestamped capability contracts can be indexed; Event
// is simply one concrete type satisfying both.
package event
