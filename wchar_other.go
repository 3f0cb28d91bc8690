//go:build !windows

package golcms

import (
	"encoding/binary"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode/utf32"
)

// wchar_t holds UTF-32 code points in native byte order elsewhere.
var wideEncoding encoding.Encoding = func() encoding.Encoding {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	if buf[0] == 1 {
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	}
	return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
}()
