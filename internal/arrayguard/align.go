package arrayguard

import "unsafe"

// sliceAddr returns the address of a float32 slice's backing array, used
// only to compute the 64-byte alignment offset in AlignedFloat32s.
func sliceAddr(s []float32) uintptr {
	if len(s) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&s[0]))
}
