// Package ton holds the simulated TON wallet plumbing: address format
// checks and nanoTON conversions. No on-chain calls are made anywhere;
// payments flagged as TON are accepted without transfer verification.
package ton

import "fmt"

const (
	// NanoTON is the smallest TON unit (1 TON = 10^9 nanoTON)
	NanoTON = 1_000_000_000
)

// TONToNano converts TON to nanoTON
func TONToNano(ton float64) int64 {
	return int64(ton * NanoTON)
}

// NanoToTON converts nanoTON to TON
func NanoToTON(nano int64) float64 {
	return float64(nano) / NanoTON
}

// FormatTON renders a nano amount as a human readable TON string.
func FormatTON(nano int64) string {
	return fmt.Sprintf("%.2f", NanoToTON(nano))
}
