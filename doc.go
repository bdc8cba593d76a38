// Package formulas implements the expression core of a spreadsheet-style
// formula engine.
//
// A formula is arithmetic over numbers and cell references, like
// "A1 * (B2 - 3) ^ 2". Operators are + - * / % and ^, where ^ binds tightest
// and groups to the right, so "2 ^ 3 ^ 2" is "2 ^ (3 ^ 2)". Cell references
// are column letters followed by row digits; columns count from A = 1, so
// "AB7" is row 7, column 28. Letters may be either case.
//
// Formulas are parsed once and may be evaluated many times. Evaluation asks a
// Resolver for the value of each referenced cell, so the same formula can be
// evaluated against a map, a live sheet, or anything else that can look up a
// coordinate. Arithmetic follows IEEE-754 doubles: 5/0 is +Inf, 0/0 and 6%0
// are NaN, and none of those are errors.
//
// Package sheet builds recalculation on top of this package.
package formulas
