// Package csvio reads and writes localization tables exported as CSV.
// Tables keep their column order and row order across a read/write round
// trip, and every row is identified by the mandatory "Key" column.
package csvio
