package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSection is the standardized structured logging key for section names.
	FieldSection = "section"
	// FieldRunID is the standardized structured logging key for run identifiers.
	FieldRunID = "run_id"
	// FieldURL is the standardized structured logging key for feed source URLs.
	FieldURL = "url"
	// FieldLink is the standardized structured logging key for entry links.
	FieldLink = "link"
)
