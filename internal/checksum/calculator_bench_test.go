package checksum

import (
	"bytes"
	"strings"
	"testing"
)

// BenchmarkSumSHA256 benchmarks streaming digest calculation
func BenchmarkSumSHA256(b *testing.B) {
	calc, err := New("sha256")
	if err != nil {
		b.Fatal(err)
	}
	content := []byte(strings.Repeat("archiefstuk inhoud\n", 4096))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := calc.Sum(bytes.NewReader(content)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSumMD5 benchmarks the legacy algorithm path
func BenchmarkSumMD5(b *testing.B) {
	calc, err := New("md5")
	if err != nil {
		b.Fatal(err)
	}
	content := []byte(strings.Repeat("archiefstuk inhoud\n", 4096))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := calc.Sum(bytes.NewReader(content)); err != nil {
			b.Fatal(err)
		}
	}
}
