// Package lightcurve computes descriptive statistics and min-max
// normalization over magnitude columns of lightcurve tables.
//
// Every function is a pure transformation of its inputs: tables are never
// modified and results are freshly allocated per call.
//
// Aggregates skip missing cells. An aggregate over a table with no present
// values (zero rows, or only missing cells) is NaN rather than an error.
package lightcurve
