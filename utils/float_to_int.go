// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to [-1, 1].
func Clamp(x float64) float64 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}

// FloatToInt16 clamps x and scales it to 16 bit PCM.
func FloatToInt16(x float64) int16 {
	// 32767 for both signs keeps the scale symmetric
	return int16(Clamp(x) * 32767.0)
}

// FloatToInt clamps x and scales it to signed PCM of bitDepth bits.
func FloatToInt(x float64, bitDepth int) int {
	return int(Clamp(x) * float64(MaxInt(bitDepth)))
}

// IntToFloat scales signed PCM of bitDepth bits to [-1, 1].
func IntToFloat(v int, bitDepth int) float64 {
	return float64(v) / float64(MaxInt(bitDepth)+1)
}

// MaxInt returns the largest sample value of signed PCM with bitDepth bits.
func MaxInt(bitDepth int) int {
	return 1<<(bitDepth-1) - 1
}
