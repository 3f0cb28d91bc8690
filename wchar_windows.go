package golcms

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// wchar_t is UTF-16 on Windows.
var wideEncoding encoding.Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
