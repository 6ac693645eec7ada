package form

import (
	"strings"
	"unicode"
)

// Label turns a camel-case id into a display label: "phoneNumber" becomes
// "Phone Number".
func Label(id FieldId) string {
	var b strings.Builder
	for i, r := range string(id) {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
