// Package docs implements the document lifecycle: membership-checked
// creation, permissioned edits with append-only version history, deletion
// with team cascade, provenance-hydrated reads, and the activity feed.
//
// AI enrichment (summary, tags, embedding) runs asynchronously on a
// worker pool after creation; enrichment failures are logged and never
// fail the creating request. A content edit drops the stale embedding
// synchronously and schedules regeneration.
package docs
