// Package services implements the core use cases behind the driving
// ports: dataset normalization and catalog ingestion/search. Services
// depend only on domain types and driven ports; all I/O happens in the
// adapters that implement those ports.
package services
