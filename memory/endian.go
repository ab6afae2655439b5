package memory

import "encoding/binary"

// WordsToBytes lays out words as a big-endian byte image.
func WordsToBytes(words ...uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(out[i*2:], w)
	}
	return out
}

// BytesToWords reads an image back as big-endian words.
// A trailing odd byte becomes the high half of a final word.
func BytesToWords(b []byte) []uint16 {
	out := make([]uint16, (len(b)+1)/2)
	for i := range out {
		hi := uint16(b[i*2]) << 8
		if i*2+1 < len(b) {
			hi |= uint16(b[i*2+1])
		}
		out[i] = hi
	}
	return out
}
