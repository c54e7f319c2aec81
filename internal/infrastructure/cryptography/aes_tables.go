package cryptography

// aesSBox is derived once at load time from the multiplicative inverse in
// GF(2^8) followed by the Rijndael affine transform.
var aesSBox = buildAESSBox()

// aesRcon holds the round constants x^(i-1) in GF(2^8), indexed from 1.
var aesRcon = [11]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// gfMul multiplies in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1 (0x11B).
func gfMul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func gfInverse(a byte) byte {
	if a == 0 {
		return 0
	}
	for b := 1; b < 256; b++ {
		if gfMul(a, byte(b)) == 1 {
			return byte(b)
		}
	}
	return 0
}

func rotl8(b byte, n uint) byte {
	return b<<n | b>>(8-n)
}

func buildAESSBox() [256]byte {
	var box [256]byte
	for i := 0; i < 256; i++ {
		inv := gfInverse(byte(i))
		box[i] = inv ^ rotl8(inv, 1) ^ rotl8(inv, 2) ^ rotl8(inv, 3) ^ rotl8(inv, 4) ^ 0x63
	}
	return box
}
