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

// mysqlwiredump decodes a hex dump of a MySQL result set and prints
// the rows. Input is one frame per line (header included), column
// definitions first, then an EOF frame, then the row frames; blank
// lines and '#' comments are skipped.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/packetwire/mysqlwire/go/log"
	"github.com/packetwire/mysqlwire/go/mysql"
)

var (
	binaryProtocol = pflag.Bool("binary", false, "decode rows with the binary (prepared statement) protocol")
	rowsAsArray    = pflag.Bool("rows-as-array", false, "print rows as ordered arrays instead of name-keyed maps")
	dateStrings    = pflag.Bool("date-strings", false, "keep temporal cells as strings")
)

func main() {
	log.RegisterFlags(pflag.CommandLine)
	pflag.Parse()
	defer log.Flush()

	in := os.Stdin
	if args := pflag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Exitf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	if err := dump(in); err != nil {
		log.Exitf("decode: %v", err)
	}
}

func dump(in *os.File) error {
	opts := &mysql.RowOptions{
		RowsAsArray: *rowsAsArray,
		DateStrings: *dateStrings,
	}
	protocol := mysql.TextProtocol
	if *binaryProtocol {
		protocol = mysql.BinaryProtocol
	}

	var fields []*mysql.Field
	var parser *mysql.RowParser

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		frame, err := hex.DecodeString(strings.ReplaceAll(text, " ", ""))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		p := mysql.NewPacket(0, frame, 0, len(frame))

		switch {
		case p.IsError():
			return p.AsError("utf8")
		case p.IsEOF():
			warnings, status, err := p.ReadEOF()
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			log.V(1).Infof("EOF frame: %d warnings, status 0x%04x", warnings, status)
			parser = mysql.CompileRowParser(protocol, fields, opts)
		case parser == nil:
			f, err := p.ParseColumnDefinition()
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fields = append(fields, f)
		default:
			row, err := parser.Parse(p, fields, opts)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Printf("%v\n", row)
		}
	}
	return scanner.Err()
}
