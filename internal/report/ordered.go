package report

import (
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Ordered is a string-keyed JSON object that serialises keys in first
// insertion order.
type Ordered[V any] struct {
	*orderedmap.OrderedMap[string, V]
}

func newOrdered[V any]() Ordered[V] {
	return Ordered[V]{OrderedMap: orderedmap.New[string, V]()}
}

// Keys returns keys in insertion order.
func (o Ordered[V]) Keys() []string {
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns values in insertion order.
func (o Ordered[V]) Values() []V {
	values := make([]V, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	return o.OrderedMap.MarshalJSON()
}

// JSONSchema describes the object as a map of V.
func (Ordered[V]) JSONSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	var v V
	item := r.Reflect(v)
	item.Version = ""
	return &jsonschema.Schema{
		Type:                 "object",
		AdditionalProperties: item,
	}
}
