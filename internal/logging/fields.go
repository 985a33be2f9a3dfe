package logging

// Standardized attribute keys shared by all showroom components.
const (
	// FieldComponent identifies the subsystem emitting the record.
	FieldComponent = "component"
	// FieldSessionID is the UUID of one mounted scene session.
	FieldSessionID = "session_id"
	// FieldCollection is the collection being rendered.
	FieldCollection = "collection"
	// FieldProductID identifies one product slot in the scene.
	FieldProductID = "product_id"
	// FieldAssetURL is the model URL being validated or loaded.
	FieldAssetURL = "asset_url"
	// FieldEventType tags machine-readable lifecycle events.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step after a failure.
	FieldErrorHint = "error_hint"
	// FieldEntityKind records whether a slot holds a verified model or a placeholder.
	FieldEntityKind = "entity_kind"
)
