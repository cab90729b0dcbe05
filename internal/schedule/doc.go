// Package schedule owns the planner data model and its store.
//
// The persisted snapshot is a JSON array of schedule records kept
// under a single key in the injected key-value collaborator:
//
//	[
//	  {
//	    "id": "9b1deb4d-...",
//	    "title": "Quarterly review",
//	    "description": "Prep the slides",
//	    "notes": "Ask Sam for numbers",
//	    "date": "2026-08-28",
//	    "priority": "high",
//	    "checklist": [
//	      { "id": "...", "text": "Draft outline", "isCompleted": true }
//	    ],
//	    "color": "#60a5fa",
//	    "createdAt": 1756339200000
//	  }
//	]
//
// # Store semantics
//
// Every mutation is a pure function of the prior collection plus its
// arguments, applied copy-on-write so untargeted schedules keep their
// identity across snapshots. After each successful mutation the whole
// collection is mirrored to the key-value store.
//
// Failure policy is fail-soft: blank titles and blank checklist item
// text are silently rejected, operations on absent ids are no-ops, and
// an unreadable persisted snapshot restores as an empty collection.
// Nothing here is fatal.
//
// # Validation
//
// Validate checks a snapshot against a bundled JSON Schema
// (draft-2020-12), falling back to minimal structural checks when no
// schema can be compiled. Restore never validates; it stays tolerant
// of unknown fields and malformed payloads by design.
package schedule
