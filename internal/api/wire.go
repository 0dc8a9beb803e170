package api

// refWire is the nested relation shape the backend embeds in entity
// responses; it is flattened into <Relation>ID/<Relation>Name fields on the
// domain types.
type refWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *refWire) id() string {
	if r == nil {
		return ""
	}
	return r.ID
}

func (r *refWire) name() string {
	if r == nil {
		return ""
	}
	return r.Name
}
