// Package services contains the core business logic, implementing the
// driving port interfaces on top of the driven ports: the indexing
// pipeline, the dual-source retrieval orchestrator, and settings.
package services
