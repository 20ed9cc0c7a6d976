package value

// Type tags name the slot an endpoint-encoded value is stored under,
// e.g. "price.value.double".
const (
	TagString         = "string"
	TagBool           = "bool"
	TagInt            = "int"
	TagDouble         = "double"
	TagDateTime       = "dateTime"
	TagDateTimeOffset = "dateTimeOffset"
	TagObject         = "object"

	// TagArrayPrefix prefixes the tag of an array's first element.
	TagArrayPrefix = "values."
)

// TypeTag returns the backend type tag for v.
//
// Arrays are tagged by their first element ("values.int"); an empty array
// is "values.object". Null, opaque values and containers are "object".
func TypeTag(v Value) string {
	switch val := v.(type) {
	case String:
		return TagString
	case Bool:
		return TagBool
	case Int:
		return TagInt
	case Double:
		return TagDouble
	case DateTimeOffset:
		return TagDateTimeOffset
	case DateTime:
		return TagDateTime
	case Array:
		if len(val) == 0 {
			return TagArrayPrefix + TagObject
		}
		return TagArrayPrefix + TypeTag(val[0])
	default:
		return TagObject
	}
}

// IsOrdered reports whether a type tag supports range comparisons.
// Only bool and object tags are restricted to equality.
func IsOrdered(tag string) bool {
	return tag != TagBool && tag != TagObject
}
