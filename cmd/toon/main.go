// toon - TOON codec CLI tool
//
// Usage:
//
//	toon decode [--lenient] [--indent=N] [file]   Decode TOON, print a debug value dump
//	toon encode [--delimiter=comma|tab|pipe] [--length-marker] [--indent=N] [file]
//	                                               Read JSON, print TOON
//	toon fmt [--indent=N] [file]                  Decode then re-encode a TOON document
//	toon version                                  Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/toon-lang/toon-go/toon"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var input io.Reader = os.Stdin

	lenient := false
	lengthMarker := false
	indent := 2
	delimiter := "comma"
	fileArg := ""
	for _, arg := range os.Args[2:] {
		switch {
		case arg == "--lenient":
			lenient = true
		case arg == "--length-marker":
			lengthMarker = true
		case strings.HasPrefix(arg, "--indent="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--indent=")); err == nil {
				indent = n
			}
		case strings.HasPrefix(arg, "--delimiter="):
			delimiter = strings.TrimPrefix(arg, "--delimiter=")
		default:
			if !strings.HasPrefix(arg, "-") && arg != "-" {
				fileArg = arg
			}
		}
	}

	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "decode":
		cmdDecode(input, lenient, indent)
	case "encode":
		cmdEncode(input, delimiter, lengthMarker, indent)
	case "fmt":
		cmdFmt(input, indent)
	case "version", "-v", "--version":
		fmt.Printf("toon %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `toon - TOON codec CLI tool (v0.1.0)

Usage:
  toon decode [--lenient] [--indent=N] [file]     Decode TOON, print a debug value dump
  toon encode [--delimiter=comma|tab|pipe] [--length-marker] [--indent=N] [file]
                                                   Read JSON, print TOON
  toon fmt [--indent=N] [file]                    Decode then re-encode a TOON document
  toon version                                    Print version info

If no file is given, reads from stdin.

Examples:
  echo 'a: 1' | toon decode
  echo '{"a":1,"b":[1,2,3]}' | toon encode
  cat data.toon | toon fmt
`)
}

func cmdDecode(r io.Reader, lenient bool, indent int) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}

	opts := toon.DefaultDecoderOptions()
	opts.Strict = !lenient
	opts.IndentWidth = indent

	v, err := toon.Decode(string(data), opts)
	if err != nil {
		fatal("decode: %v", err)
	}
	dumpValue(v, 0)
}

func cmdEncode(r io.Reader, delimiterName string, lengthMarker bool, indent int) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		fatal("parse JSON: %v", err)
	}

	v, err := fromJSON(raw)
	if err != nil {
		fatal("convert JSON: %v", err)
	}

	opts := toon.DefaultEncoderOptions()
	opts.IndentWidth = indent
	opts.LengthMarker = lengthMarker
	switch delimiterName {
	case "tab":
		opts.Delimiter = toon.Tab
	case "pipe":
		opts.Delimiter = toon.Pipe
	default:
		opts.Delimiter = toon.Comma
	}

	out, err := toon.Encode(v, opts)
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(out)
}

func cmdFmt(r io.Reader, indent int) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}

	opts := toon.DefaultDecoderOptions()
	opts.IndentWidth = indent
	v, err := toon.Decode(string(data), opts)
	if err != nil {
		fatal("decode: %v", err)
	}

	eopts := toon.DefaultEncoderOptions()
	eopts.IndentWidth = indent
	out, err := toon.Encode(v, eopts)
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(out)
}

// fromJSON converts the result of encoding/json.Unmarshal(&raw) into a
// toon.Value, mirroring the teacher's fromJSONValue dispatch
// (glyph/json_bridge.go) but targeting toon's simpler four-scalar
// value universe instead of GLYPH's time/id/bytes/struct/sum kinds.
func fromJSON(v any) (*toon.Value, error) {
	switch val := v.(type) {
	case nil:
		return toon.Null(), nil
	case bool:
		return toon.Bool(val), nil
	case string:
		return toon.StringValue(val), nil
	case float64:
		if val == float64(int64(val)) {
			return toon.Integer(int64(val)), nil
		}
		d, err := toon.NewDecimalFromString(strconv.FormatFloat(val, 'f', -1, 64))
		if err != nil {
			return nil, err
		}
		return toon.DecimalValue(d), nil
	case []any:
		elems := make([]*toon.Value, len(val))
		for i, e := range val {
			ev, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return toon.Sequence(elems...), nil
	case map[string]any:
		m := toon.Mapping()
		for k, e := range val {
			ev, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			m.Set(k, ev)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type: %T", v)
	}
}

// dumpValue prints a debug tree, one node per line, grounded on
// toon.Value.GoString.
func dumpValue(v *toon.Value, depth int) {
	pad := strings.Repeat("  ", depth)
	switch v.Kind() {
	case toon.KindSequence:
		fmt.Printf("%ssequence[%d]\n", pad, len(mustElements(v)))
		for _, e := range mustElements(v) {
			dumpValue(e, depth+1)
		}
	case toon.KindMapping:
		fmt.Printf("%smapping[%d]\n", pad, len(v.Keys()))
		for _, k := range v.Keys() {
			fmt.Printf("%s  %s:\n", pad, k)
			dumpValue(v.Get(k), depth+2)
		}
	default:
		fmt.Printf("%s%s\n", pad, v.GoString())
	}
}

func mustElements(v *toon.Value) []*toon.Value {
	elems, _ := v.Elements()
	return elems
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "toon: "+format+"\n", args...)
	os.Exit(1)
}
