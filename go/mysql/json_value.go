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
	"github.com/buger/jsonparser"
)

// decodeJSONValue builds the document tree for a JSON cell: objects
// become map[string]any, arrays []any, strings string, numbers
// float64, booleans bool and nulls nil.
func decodeJSONValue(data []byte) (any, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}
	return convertJSONValue(value, dataType)
}

func convertJSONValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		doc := make(map[string]any)
		err := jsonparser.ObjectEach(value, func(key []byte, val []byte, vt jsonparser.ValueType, _ int) error {
			child, err := convertJSONValue(val, vt)
			if err != nil {
				return err
			}
			doc[string(key)] = child
			return nil
		})
		if err != nil {
			return nil, err
		}
		return doc, nil
	case jsonparser.Array:
		var doc []any
		var convErr error
		_, err := jsonparser.ArrayEach(value, func(val []byte, vt jsonparser.ValueType, _ int, _ error) {
			if convErr != nil {
				return
			}
			child, err := convertJSONValue(val, vt)
			if err != nil {
				convErr = err
				return
			}
			doc = append(doc, child)
		})
		if err != nil {
			return nil, err
		}
		if convErr != nil {
			return nil, convErr
		}
		return doc, nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return jsonparser.ParseFloat(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, jsonparser.UnknownValueTypeError
	}
}
