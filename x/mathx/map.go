package mathx

import "golang.org/x/exp/constraints"

// MapRange maps x linearly from [inLo,inHi] onto [outLo,outHi]. Inputs
// outside the range extrapolate. The product is formed before the division
// so that x == inHi yields exactly outHi for integral spans.
// If inHi == inLo, outLo is returned.
func MapRange[T constraints.Float](x, inLo, inHi, outLo, outHi T) T {
	if inHi == inLo {
		return outLo
	}
	return (x-inLo)*(outHi-outLo)/(inHi-inLo) + outLo
}
