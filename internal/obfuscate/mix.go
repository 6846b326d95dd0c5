// Package obfuscate implements the reversible key and value transforms used
// to hide settings on disk.
//
// None of this is encryption in the integrity-protected sense: a value
// decoded with the wrong secret or group context yields garbage bytes, not an
// error.
package obfuscate

// Mix XORs data against a position-dependent keystream drawn from key.
//
// Two offsets are derived from key bytes at positions len/3, len/5, len/2 and
// len/7, read as signed 8-bit integers: a starting rotation and a step. The
// keystream starts at the rotation and walks backwards by the step, wrapping
// modulo the key length. Mix is its own inverse.
//
// An empty key returns data unchanged.
func Mix(key, data []byte) []byte {
	n := len(key)
	if n == 0 {
		return data
	}

	rotation := abs(signed(key[n/3])*signed(key[n/5])) % n
	step := abs(signed(key[n/2])*signed(key[n/7])) % n

	out := make([]byte, len(data))
	for i, j := 0, rotation; i < len(data); i, j = i+1, j-step {
		if j < 0 {
			j += n
		}
		out[i] = key[j] ^ data[i]
	}
	return out
}

func signed(b byte) int {
	return int(int8(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
