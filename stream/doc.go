// Package stream serializes data compressed with a static Huffman code.
//
// A stream consists of a header, which lists the code table explicitly, and
// a payload of packed codes.  All multi-byte integers are big-endian and all
// bit strings are written most significant bit first.
//
//     magic    "HUF1"                      4 bytes
//     count    number of table entries     uint16, 1 .. 256
//     entries  count × {
//                symbol                    1 byte
//                size                      1 byte, 1 .. 64
//                bits                      ceil(size/8) bytes, right-aligned
//              }
//     length   number of encoded bytes     uint64
//     payload  the code of each byte, concatenated, then zero-padded to a
//              byte boundary
//
// The table is transmitted as-is rather than as canonical code lengths, so
// any prefix-free table is accepted on the reading side.
//
package stream
