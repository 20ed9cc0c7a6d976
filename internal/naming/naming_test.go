package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ParentField1", "parentField1"},
		{"childField3", "childField3"},
		{"start_date", "startDate"},
		{"Start Date", "startDate"},
		{"__private", "private"},
		{"ID", "iD"},
		{"Émile", "émile"},
		{"x", "x"},
		{"", ""},
		{"___", "___"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Camelize(tc.in))
		})
	}
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, "Parent_Field", Identity("Parent_Field"))
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("camel")
	assert.True(t, ok)
	assert.Equal(t, "startDate", f("StartDate"))

	f, ok = Lookup("")
	assert.True(t, ok)
	assert.Equal(t, "a", f("A"))

	f, ok = Lookup("Identity")
	assert.True(t, ok)
	assert.Equal(t, "StartDate", f("StartDate"))

	_, ok = Lookup("kebab")
	assert.False(t, ok)
}
