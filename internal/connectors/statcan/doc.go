// Package statcan retrieves dataset archives from the agency's table
// download endpoint: one zip per (table number, language) containing
// the data CSV and its metadata sidecar.
//
// The connector throttles requests, caches response bodies on disk, and
// unpacks the archive into a domain.RawDataset. Everything downstream
// of the returned byte pair is the normalization engine's business.
package statcan
