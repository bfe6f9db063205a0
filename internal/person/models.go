package person

import "encoding/json"

// Person is a single directory record. The four named fields form the public
// schema; any additional fields the client supplied at create/update time are
// kept verbatim in Extra and round-trip through JSON unchanged.
type Person struct {
	ID         string
	Firstname  string
	Middlename string
	Lastname   string
	Email      string
	Extra      map[string]any
}

// Fields is a raw request payload: the client-supplied field set for a create
// or a partial update.
type Fields map[string]any

// Document is the root persisted structure: the full ordered person
// collection, written wholesale on every mutation.
type Document struct {
	Persons []Person `json:"persons"`
}

// Clone returns a deep copy of the document so a mutation can be applied and
// persisted before it becomes visible to readers.
func (d *Document) Clone() *Document {
	out := &Document{Persons: make([]Person, len(d.Persons))}
	for i, p := range d.Persons {
		cp := p
		if p.Extra != nil {
			cp.Extra = make(map[string]any, len(p.Extra))
			for k, v := range p.Extra {
				cp.Extra[k] = v
			}
		}
		out.Persons[i] = cp
	}
	return out
}

// Apply merges payload fields into the record. Known schema fields overwrite
// the corresponding value, anything else lands in Extra. The id field is never
// writable through a payload.
func (p *Person) Apply(fields Fields) {
	for k, v := range fields {
		switch k {
		case "id":
			// immutable after creation
		case "firstname":
			if s, ok := v.(string); ok {
				p.Firstname = s
				continue
			}
			p.setExtra(k, v)
		case "middlename":
			if s, ok := v.(string); ok {
				p.Middlename = s
				continue
			}
			p.setExtra(k, v)
		case "lastname":
			if s, ok := v.(string); ok {
				p.Lastname = s
				continue
			}
			p.setExtra(k, v)
		case "email":
			if s, ok := v.(string); ok {
				p.Email = s
				continue
			}
			p.setExtra(k, v)
		default:
			p.setExtra(k, v)
		}
	}
}

func (p *Person) setExtra(k string, v any) {
	if p.Extra == nil {
		p.Extra = map[string]any{}
	}
	p.Extra[k] = v
}

// MarshalJSON flattens the record into a single JSON object: passthrough
// fields first, then the schema fields (which win on key collision).
func (p Person) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+5)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["id"] = p.ID
	m["firstname"] = p.Firstname
	m["middlename"] = p.Middlename
	m["lastname"] = p.Lastname
	m["email"] = p.Email
	return json.Marshal(m)
}

// UnmarshalJSON splits a flat JSON object back into schema fields + Extra.
func (p *Person) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = Person{}
	for k, v := range m {
		switch k {
		case "id":
			if s, ok := v.(string); ok {
				p.ID = s
				continue
			}
		case "firstname":
			if s, ok := v.(string); ok {
				p.Firstname = s
				continue
			}
		case "middlename":
			if s, ok := v.(string); ok {
				p.Middlename = s
				continue
			}
		case "lastname":
			if s, ok := v.(string); ok {
				p.Lastname = s
				continue
			}
		case "email":
			if s, ok := v.(string); ok {
				p.Email = s
				continue
			}
		}
		p.setExtra(k, v)
	}
	return nil
}
