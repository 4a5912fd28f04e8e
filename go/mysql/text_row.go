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
	"math"

	"github.com/packetwire/mysqlwire/go/mysql/datetime"
	"github.com/packetwire/mysqlwire/go/mysql/fastparse"
	"github.com/packetwire/mysqlwire/go/mysql/geometry"
	"github.com/packetwire/mysqlwire/go/sqltypes"
)

// Text-protocol cells are all length-coded ASCII strings; only the
// interpretation differs per column type. Each decoder takes the raw
// cell bytes and never fails the row: unparseable numerics surface as
// NaN, unparseable dates as the zero (invalid) date.

// textDecoder interprets one non-NULL text cell.
type textDecoder func(raw []byte) sqltypes.Value

// compileTextDecoder picks the decoder for one column under the
// dispatch options. The options must not change between compilation
// and use; the parser cache fingerprints them.
func compileTextDecoder(f *Field, opts *RowOptions) textDecoder {
	encodingName := f.Encoding()
	switch f.ColumnType {
	case TypeTiny, TypeShort, TypeLong, TypeInt24, TypeYear:
		return textSmallInt
	case TypeLongLong:
		switch {
		case opts.SupportBigNumbers && opts.BigNumberStrings:
			// No decode at all: the cell string is already exact.
			return func(raw []byte) sqltypes.Value {
				return sqltypes.NewDecimal(string(raw))
			}
		case opts.SupportBigNumbers:
			return textBigInt
		default:
			return textSmallInt
		}
	case TypeFloat, TypeDouble:
		return textFloat
	case TypeDecimal, TypeNewDecimal:
		if opts.DecimalNumbers {
			return textFloat
		}
		return func(raw []byte) sqltypes.Value {
			return sqltypes.NewDecimal(string(raw))
		}
	case TypeDate, TypeNewDate, TypeDateTime, TypeTimestamp:
		if opts.DateStrings {
			return func(raw []byte) sqltypes.Value {
				return sqltypes.NewText(string(raw))
			}
		}
		return textDate
	case TypeTime:
		return func(raw []byte) sqltypes.Value {
			return sqltypes.NewText(string(raw))
		}
	case TypeGeometry:
		return func(raw []byte) sqltypes.Value {
			return sqltypes.NewGeometry(geometry.Parse(raw))
		}
	case TypeJSON:
		return textJSON
	case TypeNull:
		return func([]byte) sqltypes.Value { return sqltypes.NULL }
	default:
		return func(raw []byte) sqltypes.Value {
			return decodeDefault(raw, encodingName)
		}
	}
}

func textSmallInt(raw []byte) sqltypes.Value {
	v, ok := fastparse.ParseIntSmall(raw)
	if !ok {
		return sqltypes.NewFloat64(math.NaN())
	}
	return sqltypes.NewInt64(v)
}

func textBigInt(raw []byte) sqltypes.Value {
	v, exact, ok := fastparse.ParseInt(raw)
	if !ok {
		return sqltypes.NewFloat64(math.NaN())
	}
	if !exact {
		return sqltypes.NewDecimal(string(raw))
	}
	return sqltypes.NewInt64(v)
}

func textFloat(raw []byte) sqltypes.Value {
	return sqltypes.NewFloat64(fastparse.ParseFloat(raw))
}

func textDate(raw []byte) sqltypes.Value {
	dt, ok := datetime.ParseText(raw)
	if !ok {
		// invalid date, in-band
		return sqltypes.NewDate(datetime.DateTime{})
	}
	return sqltypes.NewDate(dt)
}

func textJSON(raw []byte) sqltypes.Value {
	doc, err := decodeJSONValue(raw)
	if err != nil {
		// Hand the document back verbatim rather than failing the
		// row; a cast hook can still reach the raw bytes.
		return sqltypes.NewText(string(raw))
	}
	return sqltypes.NewJSON(doc)
}
