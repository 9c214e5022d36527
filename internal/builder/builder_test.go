package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// fakeDetector returns a canned detection result.
type fakeDetector struct {
	begrip *mdto.BegripGegevens
	err    error
}

func (d *fakeDetector) Detect(ctx context.Context, path string) (*mdto.BegripGegevens, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.begrip, nil
}

// recordingLogger captures formatted messages per level.
type recordingLogger struct {
	verbose []string
	info    []string
	warn    []string
	errs    []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

var pdfBegrip = &mdto.BegripGegevens{
	Label:          "Acrobat PDF 1.4 - Portable Document Format",
	Code:           "fmt/18",
	Begrippenlijst: mdto.VerwijzingGegevens{Naam: "PRONOM-register"},
}

func fixedNow() time.Time {
	return time.Date(2023, 9, 26, 14, 45, 51, 0, time.UTC)
}

// writeSource drops a source file with known content into a temp dir.
func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeObjectDoc serializes an object and stores it as an MDTO document.
func writeObjectDoc(t *testing.T, obj mdto.Object) string {
	t.Helper()
	data, err := mdto.Marshal(obj)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "informatieobject.xml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func minimalObject(naam string) *mdto.Informatieobject {
	return &mdto.Informatieobject{
		Identificatie: []mdto.IdentificatieGegevens{{Kenmerk: "OBJ-0001", Bron: "zaakregister"}},
		Naam:          naam,
		Waardering: mdto.BegripGegevens{
			Label:          "Blijvend bewaren",
			Code:           "B",
			Begrippenlijst: mdto.VerwijzingGegevens{Naam: "Begrippenlijst Waarderingen MDTO"},
		},
		Archiefvormer: []mdto.VerwijzingGegevens{{Naam: "gemeente Voorbeeld"}},
		BeperkingGebruik: []mdto.BeperkingGebruikGegevens{{
			Type: mdto.BegripGegevens{
				Label:          "Openbaar",
				Begrippenlijst: mdto.VerwijzingGegevens{Naam: "Begrippenlijst BeperkingGebruik MDTO"},
			},
		}},
	}
}

func newTestBuilder(t *testing.T, opts Options) (*Builder, *recordingLogger) {
	t.Helper()
	log := &recordingLogger{}
	if opts.Logger == nil {
		opts.Logger = log
	}
	if opts.Detector == nil {
		opts.Detector = &fakeDetector{begrip: pdfBegrip}
	}
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	b, err := New(opts)
	require.NoError(t, err)
	return b, log
}

func TestBestandFullPipeline(t *testing.T) {
	src := writeSource(t, "scan-001.pdf", "hello world")
	objPath := writeObjectDoc(t, minimalObject("Kapvergunning eikenlaan"))

	b, _ := newTestBuilder(t, Options{})
	bestand, err := b.Bestand(context.Background(), Request{
		Path:       src,
		Kenmerken:  []string{"BST-0001"},
		Bronnen:    []string{"depotregister"},
		ObjectPath: objPath,
		URL:        "https://archief.voorbeeld.nl/depot/scan-001.pdf",
	})
	require.NoError(t, err)

	require.Len(t, bestand.Identificatie, 1)
	assert.Equal(t, "BST-0001", bestand.Identificatie[0].Kenmerk)
	assert.Equal(t, "depotregister", bestand.Identificatie[0].Bron)
	assert.Equal(t, "scan-001.pdf", bestand.Naam)
	assert.Equal(t, int64(len("hello world")), bestand.Omvang)

	require.NotNil(t, bestand.Bestandsformaat)
	assert.Equal(t, "fmt/18", bestand.Bestandsformaat.Code)

	require.Len(t, bestand.Checksum, 1)
	assert.Equal(t, "SHA-256", bestand.Checksum[0].Algoritme.Label)
	assert.Equal(t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		bestand.Checksum[0].Waarde)
	assert.Equal(t, "2023-09-26T14:45:51", bestand.Checksum[0].Datum)

	assert.Equal(t, "https://archief.voorbeeld.nl/depot/scan-001.pdf", bestand.URLBestand)

	require.NotNil(t, bestand.IsRepresentatieVan)
	assert.Equal(t, "Kapvergunning eikenlaan", bestand.IsRepresentatieVan.Naam)
	require.NotNil(t, bestand.IsRepresentatieVan.Identificatie)
	assert.Equal(t, "OBJ-0001", bestand.IsRepresentatieVan.Identificatie.Kenmerk)
}

func TestBestandResultSerializes(t *testing.T) {
	src := writeSource(t, "scan-001.pdf", "hello world")
	objPath := writeObjectDoc(t, minimalObject("Kapvergunning eikenlaan"))

	b, _ := newTestBuilder(t, Options{})
	bestand, err := b.Bestand(context.Background(), Request{
		Path:       src,
		Kenmerken:  []string{"BST-0001"},
		Bronnen:    []string{"depotregister"},
		ObjectPath: objPath,
	})
	require.NoError(t, err)

	data, err := mdto.Marshal(bestand)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<bestand>")
	assert.Contains(t, string(data), "<isRepresentatieVan>")

	parsed, err := mdto.Unmarshal(data)
	require.NoError(t, err)
	assert.IsType(t, &mdto.Bestand{}, parsed)
}

func TestBestandNaamOverride(t *testing.T) {
	src := writeSource(t, "ruw-bestand.tmp", "inhoud")

	b, _ := newTestBuilder(t, Options{})
	bestand, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"BST-0002"},
		Bronnen:   []string{"depotregister"},
		Naam:      "Scan van de kapvergunning",
	})
	require.NoError(t, err)
	assert.Equal(t, "Scan van de kapvergunning", bestand.Naam)
}

func TestBestandRequiresIdentificatie(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	b, _ := newTestBuilder(t, Options{})
	_, err := b.Bestand(context.Background(), Request{Path: src})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrInvalidInput)
}

func TestBestandRejectsMismatchedIdentificatie(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	b, _ := newTestBuilder(t, Options{})
	_, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"a", "b"},
		Bronnen:   []string{"register"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrInvalidInput)
	assert.Contains(t, err.Error(), "counts must match")
}

func TestBestandDetectionFailurePermissive(t *testing.T) {
	src := writeSource(t, "raadsel.bin", "x")
	detErr := fmt.Errorf("%w: no match", mdto.ErrDetection)

	b, log := newTestBuilder(t, Options{Detector: &fakeDetector{err: detErr}})
	bestand, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"BST-0003"},
		Bronnen:   []string{"depotregister"},
	})
	require.NoError(t, err)

	assert.Nil(t, bestand.Bestandsformaat)
	require.Len(t, log.warn, 1)
	assert.Contains(t, log.warn[0], "bestandsformaat")
}

func TestBestandDetectionFailureStrict(t *testing.T) {
	src := writeSource(t, "raadsel.bin", "x")
	detErr := fmt.Errorf("%w: no match", mdto.ErrDetection)

	b, _ := newTestBuilder(t, Options{Strict: true, Detector: &fakeDetector{err: detErr}})
	_, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"BST-0003"},
		Bronnen:   []string{"depotregister"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrDetection)
}

func TestBestandRejectsBestandAsObject(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	other := &mdto.Bestand{
		Identificatie: []mdto.IdentificatieGegevens{{Kenmerk: "BST-9999", Bron: "depotregister"}},
		Naam:          "ander-bestand.pdf",
		Omvang:        1,
	}
	objPath := writeObjectDoc(t, other)

	// Wrong in permissive mode too: the reference target is simply the
	// wrong kind of document.
	b, _ := newTestBuilder(t, Options{})
	_, err := b.Bestand(context.Background(), Request{
		Path:       src,
		Kenmerken:  []string{"BST-0004"},
		Bronnen:    []string{"depotregister"},
		ObjectPath: objPath,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrInvalidInput)
	assert.Contains(t, err.Error(), "informatieobject")
}

func TestBestandUnreadableObjectPermissive(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	b, log := newTestBuilder(t, Options{})
	bestand, err := b.Bestand(context.Background(), Request{
		Path:       src,
		Kenmerken:  []string{"BST-0005"},
		Bronnen:    []string{"depotregister"},
		ObjectPath: filepath.Join(t.TempDir(), "bestaat-niet.xml"),
	})
	require.NoError(t, err)
	assert.Nil(t, bestand.IsRepresentatieVan)
	require.Len(t, log.warn, 1)
	assert.Contains(t, log.warn[0], "isRepresentatieVan")
}

func TestBestandUnreadableObjectStrict(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	b, _ := newTestBuilder(t, Options{Strict: true})
	_, err := b.Bestand(context.Background(), Request{
		Path:       src,
		Kenmerken:  []string{"BST-0005"},
		Bronnen:    []string{"depotregister"},
		ObjectPath: filepath.Join(t.TempDir(), "bestaat-niet.xml"),
	})
	require.Error(t, err)
}

func TestBestandValidationPermissiveWarns(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")
	longNaam := strings.Repeat("a", 81)

	b, log := newTestBuilder(t, Options{})
	bestand, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"BST-0006"},
		Bronnen:   []string{"depotregister"},
		Naam:      longNaam,
	})
	require.NoError(t, err)
	assert.Equal(t, longNaam, bestand.Naam) // never mutated
	require.NotEmpty(t, log.warn)
	assert.Contains(t, log.warn[len(log.warn)-1], "naam")
}

func TestBestandValidationStrictFails(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	b, _ := newTestBuilder(t, Options{Strict: true})
	_, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"BST-0007"},
		Bronnen:   []string{"depotregister"},
		Naam:      strings.Repeat("a", 81),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrValidation)
}

func TestBestandInvalidURLStrict(t *testing.T) {
	src := writeSource(t, "scan.pdf", "x")

	b, _ := newTestBuilder(t, Options{Strict: true})
	_, err := b.Bestand(context.Background(), Request{
		Path:      src,
		Kenmerken: []string{"BST-0008"},
		Bronnen:   []string{"depotregister"},
		URL:       "geen url",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrValidation)
}

func TestBestandMissingSource(t *testing.T) {
	b, _ := newTestBuilder(t, Options{})
	_, err := b.Bestand(context.Background(), Request{
		Path:      filepath.Join(t.TempDir(), "weg.pdf"),
		Kenmerken: []string{"BST-0009"},
		Bronnen:   []string{"depotregister"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrInvalidInput)
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	_, err := New(Options{Algorithm: "crc32"})
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrInvalidInput)
}

func TestChecksumConvenience(t *testing.T) {
	src := writeSource(t, "scan.pdf", "hello world")

	sum, err := Checksum(src, "md5", fixedNow())
	require.NoError(t, err)
	assert.Equal(t, "MD5", sum.Algoritme.Label)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", sum.Waarde)
	assert.Equal(t, "2023-09-26T14:45:51", sum.Datum)
}

func TestChecksumConvenienceUnknownAlgorithm(t *testing.T) {
	_, err := Checksum("ergens.pdf", "rot13", fixedNow())
	require.Error(t, err)
	assert.ErrorIs(t, err, mdto.ErrInvalidInput)
}
