// Package intake contains the two data-collection forms of the survey
// wizard. TripForm gathers the trip-level fields and TravelerForm gathers one
// record per traveler. Both are bubbletea sub-models: they validate their own
// input and report completion with a message, never touching session state.
package intake
