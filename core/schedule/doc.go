// Package schedule implements session placement: lunch seeding, the greedy
// load-balanced pass with its bounded randomized fallback, expansion of
// course credit counts into session requests, and the run manager tying the
// pieces together over the shared availability index.
package schedule
