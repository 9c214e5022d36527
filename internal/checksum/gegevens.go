package checksum

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// BegrippenlijstNaam is the concept list that defines the algorithm
// labels used in checksumAlgoritme.
const BegrippenlijstNaam = "Begrippenlijst ChecksumAlgoritme MDTO"

// DatumFormat renders checksumDatum as a local timestamp with second
// precision and no zone offset, matching the xs:dateTime profile the
// schema expects.
const DatumFormat = "2006-01-02T15:04:05"

// Reader digests r and assembles the checksumGegevens record.
// The now argument becomes checksumDatum and is passed in explicitly
// so callers control the clock.
func Reader(r io.Reader, calc Calculator, now time.Time) (*mdto.ChecksumGegevens, error) {
	waarde, err := calc.Sum(r)
	if err != nil {
		return nil, err
	}
	return &mdto.ChecksumGegevens{
		Algoritme: mdto.BegripGegevens{
			Label:          calc.Label(),
			Begrippenlijst: mdto.VerwijzingGegevens{Naam: BegrippenlijstNaam},
		},
		Waarde: waarde,
		Datum:  now.Format(DatumFormat),
	}, nil
}

// File digests the file at path and assembles the checksumGegevens
// record.
func File(path string, calc Calculator, now time.Time) (*mdto.ChecksumGegevens, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	gegevens, err := Reader(f, calc, now)
	if err != nil {
		return nil, fmt.Errorf("checksumming %s: %w", path, err)
	}
	return gegevens, nil
}
