// Package sysmon reports the host characteristics relevant to multi-limb
// arithmetic: word size, CPU count and carry-chain instruction support.
package sysmon

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Stats holds a snapshot of host capabilities.
type Stats struct {
	GOARCH   string
	NumCPU   int
	WordBits int
	// ADX reports the ADCX/ADOX dual carry-chain instructions (x86-64).
	ADX bool
	// BMI2 reports MULX, the flag-preserving widening multiply (x86-64).
	BMI2 bool
	// ASIMD reports Advanced SIMD on arm64.
	ASIMD bool
}

// Sample collects the host snapshot.
func Sample() Stats {
	return Stats{
		GOARCH:   runtime.GOARCH,
		NumCPU:   runtime.NumCPU(),
		WordBits: 32 << (^uint(0) >> 63),
		ADX:      cpu.X86.HasADX,
		BMI2:     cpu.X86.HasBMI2,
		ASIMD:    cpu.ARM64.HasASIMD,
	}
}
