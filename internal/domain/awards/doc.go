// Package awards derives recognition labels from the swimmer history table:
// single-event improvements, triple drops and the Fast Fishy award.
//
// Every engine is a pure function of the table and the target meet. Data
// quality problems in individual rows (missing cells, unparsable times,
// non-positive drops) exclude the row; they are never reported as errors.
// A target meet without its column group, or without earlier meets where
// history is needed, yields an empty result.
package awards
