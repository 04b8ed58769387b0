// Package corpus defines the work/section/paragraph tree that the importer
// builds and the store persists.
//
// # Hierarchy
//
//   - Work: a titled book, e.g. "Sözler"
//   - Section: one source file of a work, ordered from 1
//   - Paragraph: one non-blank line of a section, ordered from 0
//
// # Identifiers
//
// Section IDs are "{work-id}-{NN}" with a two-digit rank; paragraph IDs are
// "{section-id}-{n}". Both are derived from position, so rebuilding from the
// same files yields the same IDs.
//
// # Example
//
//	work := &corpus.Work{ID: "sozler", Title: "Sözler", Order: 1, Category: "Risale-i Nur"}
//	sec := work.AddSection("Birinci Söz")
//	sec.AddParagraph("Bismillah her hayrın başıdır.")
package corpus
