// Package checksum computes fixity information for archival files.
//
// The package supports the hash algorithms named by the MDTO checksum
// concept list (MD5, SHA-1, SHA-256 and SHA-512) and produces complete
// checksumGegevens records: algorithm concept, hex digest and the
// moment the digest was taken.
//
// Hashing is streaming, so arbitrarily large files are processed at
// constant memory.
//
// # Example Usage
//
//	calc, err := checksum.New("sha256")
//	if err != nil {
//		return err
//	}
//	gegevens, err := checksum.File("scan.pdf", calc, time.Now())
//
// # Thread Safety
//
// Calculators are stateless values and safe for concurrent use.
package checksum
