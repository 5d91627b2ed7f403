package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Named is the populated form of a referenced record as the journal API embeds it.
type Named struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
	Year int    `json:"year,omitempty"`
}

// Ref is a reference that the journal API sends either as a bare id or as a populated
// object. It is decoded once at the gateway so the rest of the portal sees one shape.
type Ref struct {
	id        string
	populated *Named
}

// Reference builds an unpopulated reference.
func Reference(id string) Ref {
	return Ref{id: id}
}

// Populated builds a reference carrying the embedded record.
func Populated(n Named) Ref {
	return Ref{id: n.ID, populated: &n}
}

// ID returns the referenced identifier regardless of variant.
func (r Ref) ID() string { return r.id }

// IsPopulated reports whether the embedded record was sent.
func (r Ref) IsPopulated() bool { return r.populated != nil }

// IsZero reports an absent reference.
func (r Ref) IsZero() bool { return r.id == "" && r.populated == nil }

// Record returns the embedded record, if any.
func (r Ref) Record() (Named, bool) {
	if r.populated == nil {
		return Named{}, false
	}
	return *r.populated, true
}

// Name returns the embedded name, or the id when only a reference was sent.
func (r Ref) Name() string {
	if r.populated != nil && r.populated.Name != "" {
		return r.populated.Name
	}
	return r.id
}

// UnmarshalJSON accepts a string id, a populated object or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Ref{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Reference(id)
		return nil
	case data[0] == '{':
		var n Named
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*r = Populated(n)
		return nil
	}
	return fmt.Errorf("reference must be a string or an object, got %s", string(data))
}

// MarshalJSON writes the variant back in the shape it arrived in.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.populated != nil {
		return json.Marshal(r.populated)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
