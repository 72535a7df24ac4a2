// Package simplegallery provides a reusable library for managing a gallery
// of pages, rows, and images with pluggable repository and image-host
// backends.
//
// It exposes a single Service interface that orchestrates CRUD on the three
// ordered entity kinds, cascading deletion, share link issuance and
// resolution, and delegation of image uploads to an external host.
// Implementations of repositories (memory, Postgres) and image stores
// (memory, filesystem, S3) are provided under subpackages.
//
// # Ordering
//
// Every entity carries an integer order, unique within its sibling scope:
// all pages, rows under one page, images under one row. Repositories assign
// order atomically on create (max within scope plus one, zero when empty)
// and exclude it from updates; freed slots are never reused or compacted.
package simplegallery
