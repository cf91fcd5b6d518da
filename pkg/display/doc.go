// Package display renders the outdated report.
//
// Entries are grouped into one section per release type and printed in a fixed
// order, major first:
//
//	display.PrintReport(os.Stdout, entries)
//
// Within a section, entries keep catalog order. Release types outside the
// canonical set land in a final "Other" section rather than being dropped.
package display
