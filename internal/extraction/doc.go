// Package extraction turns the OCR transcription of a driver's licence into a
// flat field record.
//
// The package is pure: every function takes a string and returns strings, with
// no I/O and no shared mutable state. Nothing in here fails on malformed text.
// A field that cannot be read comes back as the empty string, and callers treat
// "" as "not found".
//
// Two layouts are supported, each behind the Extractor interface:
//
//   - NumberedExtractor reads documents whose fields are enumerated with
//     leading numerals (1. Nom, 2. Prénoms, ... 6. Restrictions).
//   - LabeledExtractor reads documents whose fields follow a textual label
//     (Nom, Prénoms, Date de naissance, N° Permis, ...).
//
// Word lists (stopwords, label words, next-column tokens, OCR corrections) live
// in a Lexicon that is compiled once and injected into the extractors.
package extraction
