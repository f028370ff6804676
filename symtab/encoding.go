// Copyright 2026 The exprtree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package symtab

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the character encoding of string literal bytes.
type Encoding string

const (
	UTF8        Encoding = "utf-8"
	UTF16LE     Encoding = "utf-16le"
	Windows1252 Encoding = "windows-1252"
	Latin1      Encoding = "latin1"
)

// Decode converts data to UTF-8, stopping at the first NUL terminator.
//
// The empty Encoding means [UTF8].
func (e Encoding) Decode(data []byte) (string, error) {
	var dec encoding.Encoding
	unit := 1
	switch Encoding(strings.ToLower(string(e))) {
	case "", UTF8, "utf8":
		dec = unicode.UTF8
	case UTF16LE, "utf16le":
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		unit = 2
	case Windows1252, "cp1252":
		dec = charmap.Windows1252
	case Latin1, "iso-8859-1":
		dec = charmap.ISO8859_1
	default:
		return "", fmt.Errorf("unknown encoding %q", string(e))
	}

	data = terminate(data, unit)
	if unit == 2 && len(data)%2 != 0 {
		return "", fmt.Errorf("odd number of bytes in %s string", UTF16LE)
	}

	out, err := dec.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// terminate cuts data at its first NUL code unit of the given width.
func terminate(data []byte, unit int) []byte {
	if unit == 1 {
		if i := bytes.IndexByte(data, 0); i >= 0 {
			return data[:i]
		}
		return data
	}
	for i := 0; i+unit <= len(data); i += unit {
		if data[i] == 0 && data[i+1] == 0 {
			return data[:i]
		}
	}
	return data
}
