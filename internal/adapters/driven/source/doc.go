// Package source provides catalog entry sources: adapters that read the
// dataset directory listing from CSV bytes, a local file, or an HTTP
// endpoint, and validate the directory schema before handing rows to
// the catalog service.
package source
