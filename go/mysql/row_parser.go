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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/packetwire/mysqlwire/go/log"
	"github.com/packetwire/mysqlwire/go/sqltypes"
)

// Protocol selects between the two result-row encodings.
type Protocol int8

const (
	// TextProtocol is the default result protocol: every cell is a
	// length-coded ASCII string.
	TextProtocol Protocol = iota

	// BinaryProtocol is the prepared-statement result protocol, with
	// a null bitmap and per-type cell layouts.
	BinaryProtocol
)

// RowOptions controls row decoding. SupportBigNumbers,
// BigNumberStrings, DateStrings and DecimalNumbers take part in
// decoder dispatch and are fingerprinted by the parser cache; the
// row-shaping fields (RowsAsArray, NestTables, TableSeparator),
// TypeCast and BinaryCast are applied per parse call.
type RowOptions struct {
	// RowsAsArray emits rows as ordered sqltypes.Row instead of a
	// name-keyed map.
	RowsAsArray bool

	// NestTables emits sqltypes.RowNested keyed table, then column.
	NestTables bool

	// TableSeparator, when non-empty, emits a flat map keyed
	// "table<sep>column". It takes precedence over NestTables.
	TableSeparator string

	// SupportBigNumbers returns exact decimal strings for 64-bit
	// integers outside the exact-float64 range.
	SupportBigNumbers bool

	// BigNumberStrings, with SupportBigNumbers, returns strings for
	// all 64-bit integers.
	BigNumberStrings bool

	// DateStrings returns date/time/timestamp cells as strings
	// rather than wall-clock values.
	DateStrings bool

	// DecimalNumbers returns DECIMAL cells as float64 instead of
	// exact decimal strings.
	DecimalNumbers bool

	// TypeCast intercepts every cell of text-protocol rows.
	TypeCast TypeCast

	// BinaryCast applies TypeCast to binary-protocol rows as well.
	BinaryCast bool

	// Location is not read by the row parsers: Date cells carry no
	// zone, and the zone is picked when Value.ToStdTime is called.
	Location *time.Location
}

// RowParser decodes result rows for one result-set shape. Parsers are
// compiled once per (protocol, column shape, dispatch options) and
// shared; they hold no packet or connection state, so a parser may be
// used for every row of every result set with the same shape.
type RowParser struct {
	protocol Protocol
	textCols []textDecoder
	binCols  []binaryDecoder
}

var parserCache = struct {
	sync.Mutex
	m map[string]*RowParser
}{m: make(map[string]*RowParser)}

// CompileRowParser returns the row parser for the given shape,
// compiling it on first use. The fingerprint covers the protocol, the
// per-column (type, unsigned, encoding, decimals) tuple and the
// options that influence dispatch, so equal inputs always share one
// parser.
func CompileRowParser(protocol Protocol, fields []*Field, opts *RowOptions) *RowParser {
	key := fingerprint(protocol, fields, opts)

	parserCache.Lock()
	defer parserCache.Unlock()
	if rp, ok := parserCache.m[key]; ok {
		return rp
	}

	rp := &RowParser{protocol: protocol}
	switch protocol {
	case TextProtocol:
		rp.textCols = make([]textDecoder, len(fields))
		for i, f := range fields {
			rp.textCols[i] = compileTextDecoder(f, opts)
		}
	case BinaryProtocol:
		rp.binCols = make([]binaryDecoder, len(fields))
		for i, f := range fields {
			rp.binCols[i] = compileBinaryDecoder(f, opts)
		}
	}
	parserCache.m[key] = rp
	log.V(2).Infof("compiled row parser for %d columns (%d cached)", len(fields), len(parserCache.m))
	return rp
}

func fingerprint(protocol Protocol, fields []*Field, opts *RowOptions) string {
	var b strings.Builder
	b.WriteByte(byte('0' + protocol))
	optBit := func(set bool) {
		if set {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	optBit(opts.SupportBigNumbers)
	optBit(opts.BigNumberStrings)
	optBit(opts.DateStrings)
	optBit(opts.DecimalNumbers)
	for _, f := range fields {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(int(f.ColumnType)))
		b.WriteByte(':')
		optBit(f.IsUnsigned())
		b.WriteString(f.Encoding())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(f.Decimals)))
	}
	return b.String()
}

// Parse decodes one row frame. The fields must describe the shape the
// parser was compiled for; the dispatch options must equal the ones
// used at compile time. The result is a sqltypes.Row, RowNamed or
// RowNested depending on the shaping options.
func (rp *RowParser) Parse(p *Packet, fields []*Field, opts *RowOptions) (any, error) {
	var values []sqltypes.Value
	var err error
	switch rp.protocol {
	case TextProtocol:
		values, err = rp.parseText(p, fields, opts)
	case BinaryProtocol:
		values, err = rp.parseBinary(p, fields, opts)
	}
	if err != nil {
		return nil, err
	}
	return assembleRow(values, fields, opts), nil
}

func (rp *RowParser) parseText(p *Packet, fields []*Field, opts *RowOptions) ([]sqltypes.Value, error) {
	if len(fields) != len(rp.textCols) {
		return nil, errMalformed()
	}
	cast := opts.TypeCast
	values := make([]sqltypes.Value, len(fields))
	for i, f := range fields {
		raw, null, err := p.ReadLenEncBytes()
		if err != nil {
			return nil, err
		}
		v := sqltypes.NULL
		if !null {
			v = rp.textCols[i](raw)
		}
		if cast != nil {
			v = runTypeCast(cast, f, raw, null, v)
		}
		values[i] = v
	}
	return values, nil
}

func (rp *RowParser) parseBinary(p *Packet, fields []*Field, opts *RowOptions) ([]sqltypes.Value, error) {
	if len(fields) != len(rp.binCols) {
		return nil, errMalformed()
	}
	status, err := p.ReadUint8()
	if err != nil {
		return nil, err
	}
	if status != OKPacket {
		return nil, errMalformed()
	}
	// Null bitmap, with the first two bits reserved: column k's bit
	// is bit k+2.
	bitmap, err := p.ReadBytes((len(fields) + 9) / 8)
	if err != nil {
		return nil, err
	}
	cast := opts.TypeCast
	if !opts.BinaryCast {
		cast = nil
	}
	values := make([]sqltypes.Value, len(fields))
	for i, f := range fields {
		bit := i + 2
		if bitmap[bit>>3]&(1<<(bit&7)) != 0 {
			if cast != nil {
				values[i] = runTypeCast(cast, f, nil, true, sqltypes.NULL)
			} else {
				values[i] = sqltypes.NULL
			}
			continue
		}
		v, raw, err := rp.binCols[i](p)
		if err != nil {
			return nil, err
		}
		if cast != nil {
			v = runTypeCast(cast, f, raw, false, v)
		}
		values[i] = v
	}
	return values, nil
}

// assembleRow shapes the decoded cells per the nesting options. Cells
// of columns with duplicate keys overwrite in column order, matching
// the legacy surface.
func assembleRow(values []sqltypes.Value, fields []*Field, opts *RowOptions) any {
	switch {
	case opts.RowsAsArray:
		return sqltypes.Row(values)
	case opts.TableSeparator != "":
		row := make(sqltypes.RowNamed, len(values))
		for i, f := range fields {
			row[f.Table+opts.TableSeparator+f.Name] = values[i]
		}
		return row
	case opts.NestTables:
		row := make(sqltypes.RowNested)
		for i, f := range fields {
			inner, ok := row[f.Table]
			if !ok {
				inner = make(sqltypes.RowNamed)
				row[f.Table] = inner
			}
			inner[f.Name] = values[i]
		}
		return row
	default:
		row := make(sqltypes.RowNamed, len(values))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		return row
	}
}
