// Package language provides unified language code normalization and mapping.
//
// The --language flag and config accept 2-letter, 3-letter, and word forms;
// everything is normalized to ISO 639-1 before reaching the speech engine,
// and detected codes are mapped back to display names for the run summary.
package language
