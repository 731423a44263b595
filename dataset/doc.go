// Package dataset reads integer point rows from CSV and writes query results.
//
// Input files hold one point per line with comma-separated integer
// coordinates. The zero-based line position of a row is its point index.
// Result files hold one "index,distance" line per query.
package dataset
