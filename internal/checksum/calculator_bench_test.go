package checksum

import (
	"bytes"
	"testing"
)

// BenchmarkCalculateRaw compares raw checksum cost per algorithm
func BenchmarkCalculateRaw(b *testing.B) {
	content := bytes.Repeat([]byte("some file content\n"), 1000)
	for _, calc := range []Calculator{SHA256{}, XXHash{}} {
		b.Run(calc.Name(), func(b *testing.B) {
			b.SetBytes(int64(len(content)))
			for i := 0; i < b.N; i++ {
				calc.CalculateRaw(content)
			}
		})
	}
}

// BenchmarkCalculateNormalized benchmarks normalized checksum calculation
func BenchmarkCalculateNormalized(b *testing.B) {
	calculator := New()
	content := bytes.Repeat([]byte("windows line  \r\n"), 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculator.CalculateNormalized(content)
	}
}
