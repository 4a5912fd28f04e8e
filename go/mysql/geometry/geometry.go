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

// Package geometry decodes the GEOMETRY column format: a 4-byte
// little-endian SRID followed by OGC WKB. The byte-order flag is
// per-geometry inside the WKB stream, which go-geom already honors
// for nested members of multi-geometries and collections.
package geometry

import (
	"encoding/binary"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Parse decodes a GEOMETRY cell. A nil or sub-header buffer decodes
// to nil, as does an undefined WKB type; geometry cells never fail a
// row.
func Parse(data []byte) geom.T {
	if len(data) < 4 {
		return nil
	}
	srid := binary.LittleEndian.Uint32(data)
	g, err := wkb.Unmarshal(data[4:])
	if err != nil {
		return nil
	}
	if srid != 0 {
		g, err = geom.SetSRID(g, int(srid))
		if err != nil {
			return nil
		}
	}
	return g
}

// Append encodes g back into the column format with the given SRID.
func Append(dst []byte, g geom.T, srid uint32) ([]byte, error) {
	raw, err := wkb.Marshal(g, wkb.NDR)
	if err != nil {
		return nil, err
	}
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], srid)
	dst = append(dst, hdr[:]...)
	return append(dst, raw...), nil
}
