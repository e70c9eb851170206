package inspect

import "unicode/utf8"

const truncated = "..."

// Aggregate joins count items between prefix and suffix with ", ". Items are
// produced lazily; once the next item would push the text past maxLen the
// remaining items are replaced by "...". At least one item is always included.
func Aggregate(prefix, suffix string, items func(i int) string, count, maxLen int) string {
	buf := make([]byte, 0, maxLen+len(suffix)+len(truncated))
	buf = append(buf, prefix...)
	n := utf8.RuneCountInString(prefix)
	suffixLen := utf8.RuneCountInString(suffix)

	for i := 0; i < count; i++ {
		item := items(i)

		sep := ""
		if i > 0 {
			sep = ", "
		}
		itemLen := len(sep) + utf8.RuneCountInString(item)

		if n+itemLen+suffixLen > maxLen && i > 0 {
			buf = append(buf, truncated...)
			break
		}

		buf = append(buf, sep...)
		buf = append(buf, item...)
		n += itemLen
	}

	buf = append(buf, suffix...)
	return string(buf)
}
