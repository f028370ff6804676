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
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type document struct {
	Symbols []struct {
		Addr uint64 `yaml:"addr"`
		Name string `yaml:"name"`
	} `yaml:"symbols"`

	Strings []struct {
		Addr     uint64   `yaml:"addr"`
		Text     *string  `yaml:"text"`
		Hex      string   `yaml:"hex"`
		Encoding Encoding `yaml:"encoding"`
	} `yaml:"strings"`
}

// Parse decodes a YAML symbol table.
//
// The document has the following shape:
//
//	symbols:
//	  - {addr: 0x401000, name: main}
//	strings:
//	  - {addr: 0x402000, text: "hello"}
//	  - {addr: 0x402010, hex: "68 00 69 00 00 00", encoding: utf-16le}
//
// A string given as text occupies its UTF-8 bytes plus a NUL terminator. A
// string given as hex occupies exactly those bytes and is decoded with the
// given encoding, UTF-8 by default.
func Parse(data []byte) (*Table, error) {
	return Load(bytes.NewReader(data))
}

// Load is like [Parse], but reads from r.
func Load(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("symtab: decoding symbol table: %w", err)
	}

	t := new(Table)
	for i, sym := range doc.Symbols {
		if sym.Name == "" {
			return nil, fmt.Errorf("symtab: symbol %d at %#x has no name", i, sym.Addr)
		}
		t.AddName(sym.Addr, sym.Name)
	}

	for i, str := range doc.Strings {
		var err error
		switch {
		case str.Text != nil && str.Hex != "":
			err = fmt.Errorf("symtab: string %d at %#x has both text and hex", i, str.Addr)
		case str.Text != nil:
			if str.Encoding != "" {
				err = fmt.Errorf("symtab: string %d at %#x: encoding only applies to hex", i, str.Addr)
				break
			}
			err = t.AddString(str.Addr, uint64(len(*str.Text))+1, *str.Text)
		default:
			var data []byte
			data, err = hex.DecodeString(strings.Join(strings.Fields(str.Hex), ""))
			if err != nil {
				err = fmt.Errorf("symtab: string %d at %#x: %w", i, str.Addr, err)
				break
			}
			err = t.AddStringData(str.Addr, data, str.Encoding)
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadFile is like [Load], but reads the named file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
