package dto

// Document is a JSON:API success envelope.
type Document struct {
	Data     *Resource  `json:"data"`
	Included []Resource `json:"included,omitempty"`
}

// Resource is a single JSON:API resource object.
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    any                     `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

type Relationship struct {
	Data ResourceIdentifier `json:"data"`
}

type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ErrorDocument is the one error envelope every failure is rendered into.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

type ErrorObject struct {
	Status string       `json:"status"`
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Source *ErrorSource `json:"source,omitempty"`
}

type ErrorSource struct {
	Pointer string `json:"pointer"`
}

// RequestDocument is the inbound envelope. Attributes stay untyped until a
// schema has validated them.
type RequestDocument struct {
	Data *RequestData `json:"data"`
}

type RequestData struct {
	Type       string         `json:"type,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// AttributesOf returns the attribute map, empty when the envelope is partial.
func (d RequestDocument) AttributesOf() map[string]any {
	if d.Data == nil || d.Data.Attributes == nil {
		return map[string]any{}
	}
	return d.Data.Attributes
}
