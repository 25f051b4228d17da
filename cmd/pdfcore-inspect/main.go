// seehuhn.de/go/pdfcore - a library for reading PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdfcore-inspect shows objects from a PDF file.
//
// Usage:
//
//	pdfcore-inspect [options] file.pdf [selector ...]
//
// Selectors start at the document catalog.  A selector can be a dictionary
// key, an array index, "@info" for the information dictionary, or
// "@N" / "@N.G" for the indirect object with number N and generation G.
// With the -as option, the selected object is interpreted as the given
// structure and the resulting Go value is printed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"seehuhn.de/go/pdfcore/content"
	"seehuhn.de/go/pdfcore/document"
	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/graphics"
	"seehuhn.de/go/pdfcore/graphics/color"
	"seehuhn.de/go/pdfcore/pdf"
	"seehuhn.de/go/pdfcore/store"
)

var extractors = map[string]func(pdf.Getter, pdf.Object) (any, error){
	"catalog": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return document.ExtractCatalog(r, obj)
	},
	"info": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return document.ExtractInfo(r, obj)
	},
	"encrypt": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return document.ExtractEncryption(r, obj)
	},
	"metadata": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return document.ExtractMetadata(r, obj)
	},
	"extgstate": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return graphics.ExtractExtGState(r, obj)
	},
	"colorspace": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return color.ExtractSpace(r, obj)
	},
	"function": func(r pdf.Getter, obj pdf.Object) (any, error) {
		return function.Extract(r, obj)
	},
}

func main() {
	passwd := flag.String("p", "", "PDF password")
	askPasswd := flag.Bool("P", false, "read the PDF password from the terminal")
	cacheSize := flag.Int("cache", 1000, "number of objects to cache")
	as := flag.String("as", "", "interpret the object as `type` ("+typeNames()+")")
	decode := flag.Bool("d", false, "decode stream data")
	contents := flag.Bool("c", false, "assemble the content stream of the selected page")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("pdfcore-inspect: ")

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file.pdf [selector ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *askPasswd {
		fmt.Fprint(os.Stderr, "password: ")
		buf, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr, "***")
		if err != nil {
			log.Fatal(err)
		}
		*passwd = string(buf)
	}

	f, err := store.Open(flag.Arg(0), &store.Options{Password: *passwd})
	if err != nil {
		log.Fatal(err)
	}
	trailer, err := f.Trailer()
	if err != nil {
		log.Fatal(err)
	}
	r := pdf.NewCache(f, *cacheSize)

	obj, err := locate(r, trailer, flag.Args()[1:])
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *contents:
		page, err := pdf.GetDictTyped(r, obj, "Page")
		if err != nil {
			log.Fatal(err)
		}
		stm, err := content.Assemble(r, page["Contents"])
		if err != nil {
			log.Fatal(err)
		}
		writeData(stm.Data, stm.String())

	case *as != "":
		extract, ok := extractors[*as]
		if !ok {
			log.Fatalf("unknown type %q, expected one of %s", *as, typeNames())
		}
		val, err := extract(r, obj)
		if err != nil {
			log.Fatal(err)
		}
		spew.Dump(val)

	case *decode:
		stm, err := pdf.GetStream(r, obj)
		if err != nil {
			log.Fatal(err)
		}
		data, err := filter.Default.DecodeBytes(r, stm)
		if err != nil {
			log.Fatal(err)
		}
		writeData(data, fmt.Sprintf("<%d bytes of decoded data>", len(data)))

	default:
		fmt.Println(pdf.Format(obj))
	}
}

// locate follows a list of selectors, starting at the document catalog.
func locate(r pdf.Getter, trailer *store.Trailer, desc []string) (pdf.Object, error) {
	obj, err := pdf.Resolve(r, trailer.Root)
	if err != nil {
		return nil, err
	}

	for _, key := range desc {
		switch {
		case key == "":
			return nil, errors.New("empty selector")

		case key == "@info":
			if trailer.Info == nil {
				return nil, errors.New("no information dictionary")
			}
			obj, err = pdf.Resolve(r, *trailer.Info)

		case key == "@encrypt":
			if trailer.Encrypt == nil {
				return nil, errors.New("file is not encrypted")
			}
			obj, err = pdf.Resolve(r, *trailer.Encrypt)

		case key[0] == '@':
			var ref pdf.Reference
			ref, err = parseRef(key[1:])
			if err == nil {
				obj, err = pdf.Resolve(r, ref)
			}

		default:
			switch x := obj.(type) {
			case pdf.Dict:
				val, ok := x[pdf.Name(key)]
				if !ok {
					return nil, fmt.Errorf("key %q not present in dict", key)
				}
				obj, err = pdf.Resolve(r, val)
			case *pdf.Stream:
				val, ok := x.Dict[pdf.Name(key)]
				if !ok {
					return nil, fmt.Errorf("key %q not present in stream dict", key)
				}
				obj, err = pdf.Resolve(r, val)
			case pdf.Array:
				idx, convErr := strconv.Atoi(key)
				if convErr != nil {
					return nil, fmt.Errorf("key %q not valid for type Array", key)
				}
				if idx < 0 {
					idx += len(x)
				}
				if idx < 0 || idx >= len(x) {
					return nil, fmt.Errorf("index %s out of range 0...%d", key, len(x)-1)
				}
				obj, err = pdf.Resolve(r, x[idx])
			default:
				return nil, fmt.Errorf("key %q not valid for type %s", key, pdf.TypeOf(obj))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func parseRef(s string) (pdf.Reference, error) {
	numStr, genStr, hasGen := strings.Cut(s, ".")
	number, err := strconv.ParseUint(numStr, 10, 32)
	if err != nil {
		return 0, err
	}
	var generation uint64
	if hasGen {
		generation, err = strconv.ParseUint(genStr, 10, 16)
		if err != nil {
			return 0, err
		}
	}
	return pdf.NewReference(uint32(number), uint16(generation)), nil
}

// writeData copies binary data to stdout, unless stdout is a terminal.
func writeData(data []byte, summary string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(summary)
		return
	}
	_, err := os.Stdout.Write(data)
	if err != nil {
		log.Fatal(err)
	}
}

func typeNames() string {
	return "catalog, colorspace, encrypt, extgstate, function, info, metadata"
}
