package person

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersonJSONRoundTripKeepsExtraFields(t *testing.T) {
	in := []byte(`{"id":"p1","firstname":"Ada","middlename":"M","lastname":"Lovelace","email":"ada@x.com","nickname":"countess","age":36}`)

	var p Person
	require.NoError(t, json.Unmarshal(in, &p))
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "Ada", p.Firstname)
	require.Equal(t, "ada@x.com", p.Email)
	require.Equal(t, "countess", p.Extra["nickname"])
	require.EqualValues(t, 36.0, p.Extra["age"])

	out, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	require.Equal(t, "p1", m["id"])
	require.Equal(t, "countess", m["nickname"])
	require.EqualValues(t, 36.0, m["age"])
}

func TestApplyMergesFieldsAndProtectsID(t *testing.T) {
	p := Person{ID: "p1", Firstname: "Ada", Lastname: "Old", Email: "ada@x.com"}
	p.Apply(Fields{"id": "evil", "lastname": "New", "phone": "555"})

	require.Equal(t, "p1", p.ID)
	require.Equal(t, "New", p.Lastname)
	require.Equal(t, "Ada", p.Firstname)
	require.Equal(t, "ada@x.com", p.Email)
	require.Equal(t, "555", p.Extra["phone"])
}

func TestDocumentCloneIsDeep(t *testing.T) {
	d := &Document{Persons: []Person{{ID: "a", Extra: map[string]any{"k": "v"}}}}
	cp := d.Clone()
	cp.Persons[0].Firstname = "changed"
	cp.Persons[0].Extra["k"] = "changed"

	require.Empty(t, d.Persons[0].Firstname)
	require.Equal(t, "v", d.Persons[0].Extra["k"])
}
