package value

import (
	"strconv"
	"strings"
	"time"
)

// Format renders a value for humans: strings are quoted, timestamps are
// wrapped in their tag, containers use {k: v} and [a, b].
func Format(v Value) string {
	var b strings.Builder
	writeFormat(&b, v)
	return b.String()
}

func writeFormat(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil, Null:
		b.WriteString("null")
	case String:
		b.WriteString(strconv.Quote(string(val)))
	case Bool:
		b.WriteString(strconv.FormatBool(bool(val)))
	case Int:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case Double:
		b.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case DateTime:
		b.WriteString(TagDateTime + "(" + val.Format("2006-01-02T15:04:05.999999999") + ")")
	case DateTimeOffset:
		b.WriteString(TagDateTimeOffset + "(" + val.Format(time.RFC3339Nano) + ")")
	case Opaque:
		b.WriteString(TagObject + "(" + Text(val) + ")")
	case Array:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			writeFormat(b, elem)
		}
		b.WriteByte(']')
	case *Map:
		b.WriteByte('{')
		for i, e := range val.Entries() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key + ": ")
			writeFormat(b, e.Value)
		}
		b.WriteByte('}')
	case *Record:
		b.WriteString(val.Type + "{")
		for i, f := range val.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name + ": ")
			writeFormat(b, f.Value)
		}
		b.WriteByte('}')
	}
}
