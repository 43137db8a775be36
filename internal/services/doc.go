// Package services holds the shared error taxonomy and context annotations
// used by the pipeline components.
package services
