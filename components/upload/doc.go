// Package upload exposes the WebDAV publishing gateway over HTTP:
// POST {dav, path, html} and the document is stored at path.
package upload
