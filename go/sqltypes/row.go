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

package sqltypes

// Row is a decoded result row in column order.
type Row []Value

// RowNamed is a decoded result row keyed by column name, or by
// "table<sep>column" when table nesting uses a separator.
type RowNamed map[string]Value

// RowNested is a decoded result row keyed table first, then column.
type RowNested map[string]RowNamed

// AsInt64 returns the named cell as an int64, or def when the cell is
// absent or not an Int64 value (Uint64 cells also yield def).
func (r RowNamed) AsInt64(name string, def int64) int64 {
	if v, ok := r[name].ToInt64(); ok {
		return v
	}
	return def
}

// AsUint64 returns the named cell as a uint64, or def.
func (r RowNamed) AsUint64(name string, def uint64) uint64 {
	if v, ok := r[name].ToUint64(); ok {
		return v
	}
	return def
}

// AsFloat64 returns the named cell as a float64, or def.
func (r RowNamed) AsFloat64(name string, def float64) float64 {
	if v, ok := r[name].ToFloat64(); ok {
		return v
	}
	return def
}

// AsString returns the named cell as a string, or def.
func (r RowNamed) AsString(name string, def string) string {
	if v, ok := r[name].ToString(); ok {
		return v
	}
	return def
}
