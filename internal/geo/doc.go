// Package geo assigns zipcodes to the nearest tracked Metropolitan
// Statistical Area (MSA) and exposes the regional pricing multiplier
// derived from that assignment.
package geo
