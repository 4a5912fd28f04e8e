/*
Copyright 2024 The Mysqlwire Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package charset resolves MySQL collation ids to character-set names
// and to golang.org/x/text encodings.
//
// Column definitions carry a collation id, not a character-set name;
// the table below maps the ids a server hands out in practice. Ids we
// do not know default to utf8mb4, which is both the modern server
// default and a safe superset for the ASCII-only cells the codec
// parses itself.
package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// A few interesting character set values.
// See http://dev.mysql.com/doc/internals/en/character-set.html
const (
	// Utf8 is the id of the default utf8 collation.
	Utf8 = 33

	// Binary is used by BLOB and by every numeric field.
	Binary = 63

	// Utf8mb4 is the id of the default utf8mb4 collation.
	Utf8mb4 = 45
)

// Names that never go through an x/text encoding.
const (
	NameBinary  = "binary"
	NameUtf8    = "utf8"
	NameUtf8mb4 = "utf8mb4"
	NameLatin1  = "latin1"
	NameASCII   = "ascii"
)

// collationToCharset maps the collation ids MySQL servers commonly
// send to their character-set name. Default collations first, then
// the _ci/_bin variants that share a charset.
var collationToCharset = map[uint16]string{
	1:   "big5",
	3:   "dec8",
	4:   "cp850",
	6:   "hp8",
	7:   "koi8r",
	5:   NameLatin1,
	8:   NameLatin1,
	47:  NameLatin1,
	9:   "latin2",
	10:  "swe7",
	11:  NameASCII,
	12:  "ujis",
	13:  "sjis",
	16:  "hebrew",
	18:  "tis620",
	19:  "euckr",
	22:  "koi8u",
	24:  "gb2312",
	25:  "greek",
	26:  "cp1250",
	28:  "gbk",
	87:  "gbk",
	30:  "latin5",
	32:  "armscii8",
	33:  NameUtf8,
	83:  NameUtf8,
	223: NameUtf8,
	35:  "ucs2",
	36:  "cp866",
	37:  "keybcs2",
	38:  "macce",
	39:  "macroman",
	40:  "cp852",
	41:  "latin7",
	45:  NameUtf8mb4,
	46:  NameUtf8mb4,
	224: NameUtf8mb4,
	255: NameUtf8mb4,
	51:  "cp1251",
	54:  "utf16",
	56:  "utf16le",
	57:  "cp1256",
	59:  "cp1257",
	60:  "utf32",
	63:  NameBinary,
	92:  "geostd8",
	95:  "cp932",
	97:  "eucjpms",
}

// encodings maps charset names to x/text encodings. Names absent here
// either need no transform (utf8, ascii, binary) or fall back to
// being decoded as utf8.
var encodings = map[string]encoding.Encoding{
	NameLatin1: charmap.Windows1252, // MySQL latin1 is cp1252, not ISO 8859-1
	"latin2":   charmap.ISO8859_2,
	"latin5":   charmap.ISO8859_9,
	"latin7":   charmap.ISO8859_13,
	"greek":    charmap.ISO8859_7,
	"hebrew":   charmap.ISO8859_8,
	"koi8r":    charmap.KOI8R,
	"koi8u":    charmap.KOI8U,
	"cp850":    charmap.CodePage850,
	"cp852":    charmap.CodePage852,
	"cp866":    charmap.CodePage866,
	"cp1250":   charmap.Windows1250,
	"cp1251":   charmap.Windows1251,
	"cp1256":   charmap.Windows1256,
	"cp1257":   charmap.Windows1257,
	"macroman": charmap.Macintosh,
	"tis620":   charmap.Windows874,
	"gbk":      simplifiedchinese.GBK,
	"gb2312":   simplifiedchinese.HZGB2312,
	"big5":     traditionalchinese.Big5,
	"sjis":     japanese.ShiftJIS,
	"cp932":    japanese.ShiftJIS,
	"ujis":     japanese.EUCJP,
	"eucjpms":  japanese.EUCJP,
	"euckr":    korean.EUCKR,
	"ucs2":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf16":    unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf16le":  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf32":    utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
}

// Name returns the character-set name for a collation id. Unknown ids
// resolve to utf8mb4.
func Name(collationID uint16) string {
	if name, ok := collationToCharset[collationID]; ok {
		return name
	}
	return NameUtf8mb4
}

// IsBinary reports whether name is the binary pseudo charset, i.e.
// cells under it are raw bytes, not text.
func IsBinary(name string) bool {
	return name == "" || name == NameBinary
}

// Decode converts cell bytes under the named charset to a string.
// utf8 and its supersets pass through; the binary charset is the
// caller's responsibility and decodes as raw bytes here.
func Decode(name string, b []byte) (string, error) {
	enc, ok := encodings[name]
	if !ok {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts a string to cell bytes under the named charset.
func Encode(name string, s string) ([]byte, error) {
	enc, ok := encodings[name]
	if !ok {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}
