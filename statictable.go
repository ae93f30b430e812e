package hpack

// staticTableEntries is the RFC 7541 Appendix A table, fixed for the lifetime of
// the process. Entries are 1-indexed on the wire; staticTableEntries[0]
// corresponds to index 1.
var staticTableEntries = []HeaderField{
	{Name: []byte(":authority"), Value: nil},
	{Name: []byte(":method"), Value: []byte("GET")},
	{Name: []byte(":method"), Value: []byte("POST")},
	{Name: []byte(":path"), Value: []byte("/")},
	{Name: []byte(":path"), Value: []byte("/index.html")},
	{Name: []byte(":scheme"), Value: []byte("http")},
	{Name: []byte(":scheme"), Value: []byte("https")},
	{Name: []byte(":status"), Value: []byte("200")},
	{Name: []byte(":status"), Value: []byte("204")},
	{Name: []byte(":status"), Value: []byte("206")},
	{Name: []byte(":status"), Value: []byte("304")},
	{Name: []byte(":status"), Value: []byte("400")},
	{Name: []byte(":status"), Value: []byte("404")},
	{Name: []byte(":status"), Value: []byte("500")},
	{Name: []byte("accept-charset"), Value: nil},
	{Name: []byte("accept-encoding"), Value: []byte("gzip, deflate")},
	{Name: []byte("accept-language"), Value: nil},
	{Name: []byte("accept-ranges"), Value: nil},
	{Name: []byte("accept"), Value: nil},
	{Name: []byte("access-control-allow-origin"), Value: nil},
	{Name: []byte("age"), Value: nil},
	{Name: []byte("allow"), Value: nil},
	{Name: []byte("authorization"), Value: nil},
	{Name: []byte("cache-control"), Value: nil},
	{Name: []byte("content-disposition"), Value: nil},
	{Name: []byte("content-encoding"), Value: nil},
	{Name: []byte("content-language"), Value: nil},
	{Name: []byte("content-length"), Value: nil},
	{Name: []byte("content-location"), Value: nil},
	{Name: []byte("content-range"), Value: nil},
	{Name: []byte("content-type"), Value: nil},
	{Name: []byte("cookie"), Value: nil},
	{Name: []byte("date"), Value: nil},
	{Name: []byte("etag"), Value: nil},
	{Name: []byte("expect"), Value: nil},
	{Name: []byte("expires"), Value: nil},
	{Name: []byte("from"), Value: nil},
	{Name: []byte("host"), Value: nil},
	{Name: []byte("if-match"), Value: nil},
	{Name: []byte("if-modified-since"), Value: nil},
	{Name: []byte("if-none-match"), Value: nil},
	{Name: []byte("if-range"), Value: nil},
	{Name: []byte("if-unmodified-since"), Value: nil},
	{Name: []byte("last-modified"), Value: nil},
	{Name: []byte("link"), Value: nil},
	{Name: []byte("location"), Value: nil},
	{Name: []byte("max-forwards"), Value: nil},
	{Name: []byte("proxy-authenticate"), Value: nil},
	{Name: []byte("proxy-authorization"), Value: nil},
	{Name: []byte("range"), Value: nil},
	{Name: []byte("referer"), Value: nil},
	{Name: []byte("refresh"), Value: nil},
	{Name: []byte("retry-after"), Value: nil},
	{Name: []byte("server"), Value: nil},
	{Name: []byte("set-cookie"), Value: nil},
	{Name: []byte("strict-transport-security"), Value: nil},
	{Name: []byte("transfer-encoding"), Value: nil},
	{Name: []byte("user-agent"), Value: nil},
	{Name: []byte("vary"), Value: nil},
	{Name: []byte("via"), Value: nil},
	{Name: []byte("www-authenticate"), Value: nil},
}

// staticLen is the number of entries in the static table (61), and the
// offset at which combined-index numbering hands off to the dynamic
// table.
const staticLen = 61

// staticNameIndex maps a header name to the smallest static index that
// carries it, built once at init by scanning the table in reverse so
// earlier (smaller-index) duplicates win.
var staticNameIndex map[string]int

func init() {
	if len(staticTableEntries) != staticLen {
		panic("hpack: static table does not have 61 entries")
	}
	staticNameIndex = make(map[string]int, staticLen)
	for i := len(staticTableEntries) - 1; i >= 0; i-- {
		staticNameIndex[string(staticTableEntries[i].Name)] = i + 1
	}
}

// staticEntry returns the i'th static table entry (1-based). i must be
// in [1, staticLen].
func staticEntry(i int) HeaderField {
	return staticTableEntries[i-1]
}

// staticIndexByName returns the smallest 1-based index whose name equals
// name, or -1 if no static entry carries that name.
func staticIndexByName(name []byte) int {
	if i, ok := staticNameIndex[string(name)]; ok {
		return i
	}
	return -1
}

// staticIndexByNameValue returns the 1-based index of the static entry
// matching both name and value, or -1. Entries sharing a name are
// contiguous in the 61-entry table, so once the first name match is
// found it only needs to scan forward while the name still matches.
func staticIndexByNameValue(name, value []byte) int {
	start, ok := staticNameIndex[string(name)]
	if !ok {
		return -1
	}
	for i := start; i <= staticLen; i++ {
		e := staticTableEntries[i-1]
		if string(e.Name) != string(name) {
			break
		}
		if string(e.Value) == string(value) {
			return i
		}
	}
	return -1
}
