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

package mysql

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/packetwire/mysqlwire/go/mysql/charset"
	"github.com/packetwire/mysqlwire/go/mysql/geometry"
	"github.com/packetwire/mysqlwire/go/sqltypes"
)

// FieldView is the stable surface a TypeCast callback sees for each
// cell: the column description plus accessors over the raw cell. It
// is a capability interface; user code cannot reach the packet
// through it.
type FieldView interface {
	// Column description. Schema is the "db" of the legacy surface;
	// TypeName and Length are the legacy aliases for ColumnType and
	// ColumnLength.
	Schema() string
	Table() string
	OrgTable() string
	Name() string
	OrgName() string
	TypeName() string
	ColumnType() uint8
	ColumnLength() uint32
	Length() uint32
	CharacterSet() uint16
	Flags() uint16
	Decimals() uint8

	// Encoding is the column's resolved character-set name, forced
	// empty when the cell is NULL.
	Encoding() string

	// String returns the cell decoded as a string; ok is false for
	// NULL.
	String() (value string, ok bool)

	// Bytes returns the raw cell bytes, nil for NULL.
	Bytes() []byte

	// Geometry parses the cell as a GEOMETRY value.
	Geometry() geom.T
}

// NextFunc runs the default decoder for the current cell.
type NextFunc func() sqltypes.Value

// TypeCast intercepts every cell of a row. It may inspect the field,
// consume the raw bytes itself, or fall back to next() for the
// default decoding.
type TypeCast func(field FieldView, next NextFunc) sqltypes.Value

// castField implements FieldView over one decoded cell. The default
// value is computed by the row parser before the callback runs; the
// next() thunk hands it out.
type castField struct {
	field *Field
	raw   []byte
	null  bool
	def   sqltypes.Value
}

func newCastField(f *Field, raw []byte, null bool, def sqltypes.Value) *castField {
	return &castField{field: f, raw: raw, null: null, def: def}
}

func (cf *castField) Schema() string        { return cf.field.Schema }
func (cf *castField) Table() string         { return cf.field.Table }
func (cf *castField) OrgTable() string      { return cf.field.OrgTable }
func (cf *castField) Name() string          { return cf.field.Name }
func (cf *castField) OrgName() string       { return cf.field.OrgName }
func (cf *castField) TypeName() string      { return cf.field.TypeName() }
func (cf *castField) ColumnType() uint8     { return cf.field.ColumnType }
func (cf *castField) ColumnLength() uint32  { return cf.field.ColumnLength }
func (cf *castField) Length() uint32        { return cf.field.ColumnLength }
func (cf *castField) CharacterSet() uint16  { return cf.field.CharacterSet }
func (cf *castField) Flags() uint16         { return cf.field.Flags }
func (cf *castField) Decimals() uint8       { return cf.field.Decimals }

func (cf *castField) Encoding() string {
	if cf.null {
		return ""
	}
	return cf.field.Encoding()
}

func (cf *castField) String() (string, bool) {
	if cf.null {
		return "", false
	}
	return valueAsString(cf.def), true
}

func (cf *castField) Bytes() []byte {
	if cf.null {
		return nil
	}
	return cf.raw
}

func (cf *castField) Geometry() geom.T {
	if cf.null {
		return nil
	}
	return geometry.Parse(cf.raw)
}

func (cf *castField) next() sqltypes.Value {
	return cf.def
}

// valueAsString renders the default-decoded cell the way the legacy
// surface stringifies it: raw-byte cells convert byte for byte,
// everything else formats its decoded value.
func valueAsString(v sqltypes.Value) string {
	if b, ok := v.ToBytes(); ok {
		return string(b)
	}
	if v.IsNull() {
		return ""
	}
	if g, ok := v.ToGeometry(); ok {
		return fmt.Sprintf("%v", g)
	}
	return v.String()
}

// runTypeCast routes one cell through the user callback.
func runTypeCast(tc TypeCast, f *Field, raw []byte, null bool, def sqltypes.Value) sqltypes.Value {
	cf := newCastField(f, raw, null, def)
	return tc(cf, cf.next)
}

// decodeDefault is the fallback for column types without a dedicated
// decoder: raw bytes under the binary charset, text otherwise. A
// charset the encoding layer cannot decode degrades to raw bytes.
func decodeDefault(raw []byte, encodingName string) sqltypes.Value {
	if charset.IsBinary(encodingName) {
		return sqltypes.NewBytes(raw)
	}
	s, err := charset.Decode(encodingName, raw)
	if err != nil {
		return sqltypes.NewBytes(raw)
	}
	return sqltypes.NewText(s)
}
