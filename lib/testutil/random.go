package testutil

import "math/rand"

// RandomString generates a random lowercase string given the pseudo random source.
func RandomString(rndm *rand.Rand, length int) string {
	str := make([]rune, length)
	for i := range length {
		str[i] = 'a' + rune(rndm.Intn(26))
	}
	return string(str)
}

// RandomWords generates `count` random lowercase words joined by single spaces.
func RandomWords(rndm *rand.Rand, count int) string {
	out := ""
	for i := range count {
		if i > 0 {
			out += " "
		}
		out += RandomString(rndm, 1+rndm.Intn(8))
	}
	return out
}
