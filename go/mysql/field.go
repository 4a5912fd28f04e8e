/*
Copyright 2023 The Mysqlwire Authors.

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
	"github.com/packetwire/mysqlwire/go/mysql/charset"
)

// Field is one column definition out of a result-set header.
type Field struct {
	// Schema is the database name ("db" in the legacy surface).
	Schema string

	// Table is the table alias used in the query.
	Table string

	// OrgTable is the physical table name.
	OrgTable string

	// Name is the column alias used in the query.
	Name string

	// OrgName is the physical column name.
	OrgName string

	// CharacterSet is the numeric collation id; 63 is binary.
	CharacterSet uint16

	// ColumnLength is the display length.
	ColumnLength uint32

	// ColumnType is the wire type code (Type* constants).
	ColumnType uint8

	// Flags is the field flag bitset; FlagUnsigned is the only bit
	// the row parsers dispatch on.
	Flags uint16

	// Decimals is the fractional digit count for temporal and
	// decimal columns.
	Decimals uint8
}

// TypeName returns the legacy string form of the column type.
func (f *Field) TypeName() string {
	return TypeName(f.ColumnType)
}

// Length is the legacy alias for ColumnLength.
func (f *Field) Length() uint32 {
	return f.ColumnLength
}

// Encoding resolves the column's character-set name.
func (f *Field) Encoding() string {
	return charset.Name(f.CharacterSet)
}

// IsUnsigned reports whether the UNSIGNED flag is set.
func (f *Field) IsUnsigned() bool {
	return f.Flags&FlagUnsigned != 0
}

// ParseColumnDefinition decodes a ColumnDefinition41 frame into a
// Field. The catalog string (always "def") is consumed and dropped;
// reading stops after the decimals byte, so the filler bytes after
// the fixed tail are left unread.
func (p *Packet) ParseColumnDefinition() (*Field, error) {
	f := &Field{}

	// catalog
	if _, _, err := p.ReadLenEncBytes(); err != nil {
		return nil, err
	}
	var err error
	if f.Schema, _, err = p.ReadLenEncString(charset.NameUtf8); err != nil {
		return nil, err
	}
	if f.Table, _, err = p.ReadLenEncString(charset.NameUtf8); err != nil {
		return nil, err
	}
	if f.OrgTable, _, err = p.ReadLenEncString(charset.NameUtf8); err != nil {
		return nil, err
	}
	if f.Name, _, err = p.ReadLenEncString(charset.NameUtf8); err != nil {
		return nil, err
	}
	if f.OrgName, _, err = p.ReadLenEncString(charset.NameUtf8); err != nil {
		return nil, err
	}

	// length of the fixed tail, always 0x0c
	if _, _, err = p.ReadLenEncInt(); err != nil {
		return nil, err
	}
	if f.CharacterSet, err = p.ReadUint16(); err != nil {
		return nil, err
	}
	if f.ColumnLength, err = p.ReadUint32(); err != nil {
		return nil, err
	}
	if f.ColumnType, err = p.ReadUint8(); err != nil {
		return nil, err
	}
	if f.Flags, err = p.ReadUint16(); err != nil {
		return nil, err
	}
	if f.Decimals, err = p.ReadUint8(); err != nil {
		return nil, err
	}
	return f, nil
}
