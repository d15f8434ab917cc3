// Package services defines the shared error taxonomy and context annotations
// used by the pipeline stages.
package services
