package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemamap/schemaerrors"
)

func newPerson(t *testing.T) (*Mapper, *Mapper) {
	t.Helper()
	address := NewMapper("Address").
		MustAttribute("street", String).
		MustAttribute("city", String)

	person := NewMapper("models.Person").
		MustAttribute("name", String).
		MustAttribute("age", Integer, DefaultValue(18)).
		MustAttribute("tags", String, Collection()).
		MustAttribute("address", address)
	return person, address
}

func TestMapper_Attributes(t *testing.T) {
	person, address := newPerson(t)

	attrs := person.Attributes()
	require.Len(t, attrs, 4)
	assert.Equal(t, []string{"name", "age", "tags", "address"},
		[]string{attrs[0].Name, attrs[1].Name, attrs[2].Name, attrs[3].Name})

	age, ok := person.Attribute("age")
	require.True(t, ok)
	assert.True(t, age.HasDefault())
	v, err := age.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, int64(18), v)

	tags, _ := person.Attribute("tags")
	assert.True(t, tags.Collection)

	addr, _ := person.Attribute("address")
	m, ok := AsMapper(addr.Type)
	require.True(t, ok)
	assert.Same(t, address, m)

	_, ok = AsMapper(String)
	assert.False(t, ok)
}

func TestMapper_Names(t *testing.T) {
	person, _ := newPerson(t)
	assert.Equal(t, "models.Person", person.Name())
	assert.Equal(t, "models.Person", person.TypeName())
	assert.Equal(t, "Person", person.UnqualifiedName())
}

func TestMapper_RedeclareReplacesInPlace(t *testing.T) {
	m := NewMapper("M").MustAttribute("a", String).MustAttribute("b", String)
	require.NoError(t, m.AddAttribute("a", Integer))

	attrs := m.Attributes()
	assert.Equal(t, "a", attrs[0].Name)
	assert.Equal(t, Integer, attrs[0].Type)
	assert.Len(t, attrs, 2)
}

func TestMapper_AddAttributeErrors(t *testing.T) {
	m := NewMapper("M")

	err := m.AddAttribute("", String)
	assert.True(t, errors.Is(err, schemaerrors.ErrIncorrectMappingArguments))

	err = m.AddAttribute("x", nil)
	assert.Error(t, err)

	err = m.AddAttribute("list", String, Collection(), DefaultValue("a"))
	var argErr *schemaerrors.IncorrectMappingArgumentsError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "list", argErr.Key)
	assert.Contains(t, argErr.Message, "collection")

	assert.Panics(t, func() { m.MustAttribute("", String) })
}

func TestMapper_DefaultDictMapping(t *testing.T) {
	person, _ := newPerson(t)

	keys := person.Mapping(JSON)
	require.Len(t, keys, 4)
	assert.Equal(t, "name", keys[0].Name)
	assert.Equal(t, "name", keys[0].Attribute)
	assert.False(t, person.HasExplicitMapping(JSON))
}

func TestMapper_ExplicitDictMapping(t *testing.T) {
	person, _ := newPerson(t)
	person.MustMap(JSON, "Name", To("name"))
	person.MustMap(JSON, "Address", To("address"))
	person.MustMap(JSON, "Extra", Using("ExtraFromJSON", "ExtraToJSON"), Group("extra"), RenderNil(true))

	keys := person.Mapping(JSON)
	require.Len(t, keys, 3)
	assert.Equal(t, "Name", keys[0].Name)
	assert.Equal(t, "address", keys[1].Attribute)
	assert.Equal(t, &Methods{From: "ExtraFromJSON", To: "ExtraToJSON"}, keys[2].Using)
	assert.True(t, keys[2].RenderNil)
	assert.Equal(t, "extra", keys[2].Group)

	// other formats keep their defaults
	assert.Len(t, person.Mapping(YAML), 4)
}

func TestMapper_MapValidation(t *testing.T) {
	m := NewMapper("M").MustAttribute("a", String)

	tests := []struct {
		name string
		key  string
		opts []MapOption
		msg  string
	}{
		{"empty key", "", []MapOption{To("a")}, "key can't be empty"},
		{"neither to nor using", "k", nil, "either To or Using is required"},
		{"both to and using", "k", []MapOption{To("a"), Using("f", "t")}, "mutually exclusive"},
		{"using without to method", "k", []MapOption{Using("f", "")}, "from and to"},
		{"namespace on dict", "k", []MapOption{To("a"), InNamespace("http://x", "x")}, "only apply to XML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Map(JSON, tt.key, tt.opts...)
			var argErr *schemaerrors.IncorrectMappingArgumentsError
			require.ErrorAs(t, err, &argErr)
			assert.Contains(t, argErr.Message, tt.msg)
			assert.Equal(t, "M", argErr.Mapper)
		})
	}

	assert.Error(t, m.Map(Format("ini"), "k", To("a")))
	assert.Panics(t, func() { m.MustMap(JSON, "", To("a")) })
}

func TestMapper_Extend(t *testing.T) {
	parent := NewMapper("Base").MustAttribute("id", Integer).MustMap(JSON, "ID", To("id"))
	require.NoError(t, parent.XMLNamespace("http://base", "b"))

	child := NewMapper("Child").Extend(parent)
	child.MustAttribute("name", String).MustMap(JSON, "Name", To("name"))

	attrs := child.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "id", attrs[0].Name)
	assert.Equal(t, "name", attrs[1].Name)

	keys := child.Mapping(JSON)
	require.Len(t, keys, 2)
	assert.Equal(t, "ID", keys[0].Name)
	assert.Equal(t, "Name", keys[1].Name)

	assert.Equal(t, Namespace{URI: "http://base", Prefix: "b"}, child.XML().DefaultNamespace())

	// parent is unaffected
	assert.Len(t, parent.Attributes(), 1)
	assert.Len(t, parent.Mapping(JSON), 1)
}
