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

package document

import "seehuhn.de/go/pdfcore/pdf"

// PDF 2.0 sections: 7.6.2

// EncryptionAlgorithm is the value of the /V entry in an encryption
// dictionary.
type EncryptionAlgorithm int

// These are the algorithms listed in the PDF specification.
const (
	// AlgUndocumented is an undocumented algorithm which is no longer
	// supported.
	AlgUndocumented EncryptionAlgorithm = 0

	// AlgRC4_40 uses RC4 or AES with a 40-bit key.
	AlgRC4_40 EncryptionAlgorithm = 1

	// AlgRC4Long uses RC4 or AES with a key longer than 40 bits.
	AlgRC4Long EncryptionAlgorithm = 2

	// AlgUnpublished is an unpublished algorithm.
	AlgUnpublished EncryptionAlgorithm = 3

	// AlgCryptFilters selects the algorithm through crypt filters.
	AlgCryptFilters EncryptionAlgorithm = 4

	// AlgAES256 uses AES with a 256-bit key (PDF 2.0).
	AlgAES256 EncryptionAlgorithm = 5
)

// EncryptionAlgorithmEnum maps /V values to [EncryptionAlgorithm].
var EncryptionAlgorithmEnum = &pdf.IntEnum[EncryptionAlgorithm]{
	Name: "EncryptionAlgorithm",
	Values: map[pdf.Integer]EncryptionAlgorithm{
		0: AlgUndocumented,
		1: AlgRC4_40,
		2: AlgRC4Long,
		3: AlgUnpublished,
		4: AlgCryptFilters,
		5: AlgAES256,
	},
}

// Encryption represents an encryption dictionary.  Only the entries common
// to all security handlers are interpreted; the full dictionary is
// available in Dict.
type Encryption struct {
	Filter    pdf.Name
	SubFilter *pdf.Name
	V         *EncryptionAlgorithm

	// Length is the key length in bits.
	Length int

	// CF holds the crypt filter dictionaries.
	CF pdf.Object

	StmF pdf.Name
	StrF pdf.Name
	EFF  pdf.Name

	Dict pdf.Dict
}

// ExtractEncryption reads an encryption dictionary.
func ExtractEncryption(r pdf.Getter, obj pdf.Object) (*Encryption, error) {
	e := &Encryption{}
	schema := &pdf.Schema{
		Fields: []pdf.Field{
			pdf.Required("Filter", &e.Filter, pdf.AsName),
			pdf.Optional("SubFilter", &e.SubFilter, pdf.AsName),
			pdf.Optional("V", &e.V, EncryptionAlgorithmEnum.Convert),
			pdf.Default("Length", &e.Length, 40, pdf.AsInt),
			pdf.Raw("CF", &e.CF),
			pdf.Default("StmF", &e.StmF, "Identity", pdf.AsName),
			pdf.Default("StrF", &e.StrF, "Identity", pdf.AsName),
			pdf.Default("EFF", &e.EFF, "Identity", pdf.AsName),
		},
	}
	dict, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}
	if e.Length%8 != 0 || e.Length < 40 || e.Length > 256 {
		return nil, pdf.Wrap(pdf.Errorf("invalid key length %d", e.Length), "/Length")
	}
	e.Dict = dict
	return e, nil
}
