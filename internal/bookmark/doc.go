// Package bookmark provides the owned-resource model for bookmarkd.
//
// Every bookmark has exactly one owner, fixed at creation. All reads and
// mutations go through the service's ownership gate: a missing bookmark is
// reported as not found to everyone, and an ownership mismatch is only
// evaluated once existence is confirmed, so callers always observe
// not-found before access-denied for the same resource.
package bookmark
