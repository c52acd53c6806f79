// Package dataset exposes the bundled snapshot of the Lahman baseball
// database as typed, in-memory data frames. Frames are parsed lazily from
// embedded CSV files; column kinds (integer, float, text) are inferred from
// the data. The Labels frame documents the other frames and is excluded from
// the set of tables a backend is required to hold.
package dataset
