package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFilled(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"unset", Unset(), false},
		{"empty string", String(""), false},
		{"blank string", String("   "), false},
		{"text", String("Alice"), true},
		{"false is provided", Bool(false), true},
		{"zero is provided", Number(0), true},
		{"date", Date(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.IsFilled())
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(String("true")))
	assert.True(t, Unset().Equal(Value{}))
	assert.True(t, Date(time.Date(2000, 2, 29, 13, 0, 0, 0, time.UTC)).
		Equal(Date(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC))))
}

func TestRecordIsImmutable(t *testing.T) {
	base := New(map[string]Value{"invoiceName": String("Alice")})
	next := base.With("invoiceName", String("Bob"))

	assert.Equal(t, "Alice", base.Get("invoiceName").Str())
	assert.Equal(t, "Bob", next.Get("invoiceName").Str())

	cleared := next.With("invoiceName", Unset())
	assert.Equal(t, 1, cleared.Len(), "clearing keeps the field")
	assert.True(t, cleared.Get("invoiceName").IsUnset())

	m := base.Map()
	m["invoiceName"] = String("mutated")
	assert.Equal(t, "Alice", base.Get("invoiceName").Str())
}

func TestRecordJSON(t *testing.T) {
	r := New(map[string]Value{
		"firstName":     String("Asha"),
		"gstRegistered": Bool(false),
		"dateOfBirth":   Date(time.Date(1990, 1, 31, 0, 0, 0, 0, time.UTC)),
		"phone":         Unset(),
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"Asha","gstRegistered":false,"dateOfBirth":"1990-01-31","phone":null}`, string(data))

	var decoded Record
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Asha","gstRegistered":true,"phone":null}`), &decoded))
	assert.Equal(t, "Asha", decoded.Get("firstName").Str())
	assert.True(t, decoded.Get("gstRegistered").IsTrue())
	assert.True(t, decoded.Get("phone").IsUnset())
	assert.Equal(t, []string{"firstName", "gstRegistered", "phone"}, decoded.Names())
}
