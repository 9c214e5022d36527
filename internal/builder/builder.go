// Package builder assembles bestand metadata records from source
// files, tying together format detection, fixity and the link to the
// represented informatieobject.
package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/archiefkit/mdto/internal/checksum"
	"github.com/archiefkit/mdto/internal/files"
	"github.com/archiefkit/mdto/internal/logging"
	"github.com/archiefkit/mdto/internal/pronom"
	"github.com/archiefkit/mdto/pkg/mdto"
)

// FormatDetector identifies a file's format as a PRONOM concept.
type FormatDetector interface {
	Detect(ctx context.Context, path string) (*mdto.BegripGegevens, error)
}

// Options configures a Builder.
type Options struct {
	// Algorithm names the checksum algorithm. Empty selects the
	// default.
	Algorithm string

	// Strict escalates failed format detection, an underivable
	// isRepresentatieVan and validation findings from warnings to
	// errors.
	Strict bool

	// Logger receives progress and warnings. Nil means silent.
	Logger mdto.Logger

	// Detector identifies file formats. Nil selects fido.
	Detector FormatDetector

	// Now supplies the checksum timestamp. Nil means time.Now.
	Now func() time.Time
}

// Builder turns source files into bestand records.
type Builder struct {
	calc   checksum.Calculator
	det    FormatDetector
	log    mdto.Logger
	now    func() time.Time
	strict bool
}

// New creates a Builder, filling in defaults for unset options. An
// unknown algorithm name is rejected here, before any file is touched.
func New(opts Options) (*Builder, error) {
	calc, err := checksum.New(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewNullLogger()
	}
	det := opts.Detector
	if det == nil {
		det = pronom.NewDetector(log)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Builder{
		calc:   calc,
		det:    det,
		log:    log,
		now:    now,
		strict: opts.Strict,
	}, nil
}

// Request describes one file to turn into a bestand record.
type Request struct {
	// Path is the file to describe.
	Path string

	// Kenmerken and Bronnen pair up positionally into identificatie
	// elements. They must be the same length and hold at least one
	// entry each.
	Kenmerken []string
	Bronnen   []string

	// ObjectPath points at the MDTO document of the informatieobject
	// this file represents. Empty leaves isRepresentatieVan to be
	// filled in later.
	ObjectPath string

	// Naam overrides the recorded file name. Empty means the base
	// name of Path.
	Naam string

	// URL becomes URLBestand when set.
	URL string
}

// Bestand runs the pipeline for one file: stat, format detection,
// checksum, the reference to the represented object, validation.
//
// In strict mode every failed step is fatal. Otherwise detection and
// derivation failures degrade to warnings and the affected element is
// left out, so the record can be completed by hand later. Pointing
// ObjectPath at a bestand document is wrong in either mode.
func (b *Builder) Bestand(ctx context.Context, req Request) (*mdto.Bestand, error) {
	identificaties, err := pairIdentificaties(req.Kenmerken, req.Bronnen)
	if err != nil {
		return nil, err
	}

	in, err := files.Open(req.Path)
	if err != nil {
		return nil, err
	}

	naam := req.Naam
	if naam == "" {
		naam = in.Name()
	}

	bestand := &mdto.Bestand{
		Identificatie: identificaties,
		Naam:          naam,
		Omvang:        in.Size(),
		URLBestand:    req.URL,
	}

	formaat, err := b.det.Detect(ctx, in.Path())
	if err != nil {
		if b.strict {
			return nil, err
		}
		b.log.Warn("leaving <bestandsformaat> empty: %v", err)
	} else {
		bestand.Bestandsformaat = formaat
	}

	sum, err := b.checksumInput(in)
	if err != nil {
		return nil, err
	}
	bestand.Checksum = []mdto.ChecksumGegevens{*sum}

	if req.ObjectPath != "" {
		verwijzing, err := b.deriveVerwijzing(req.ObjectPath)
		if err != nil {
			if b.strict || errors.Is(err, mdto.ErrInvalidInput) {
				return nil, err
			}
			b.log.Warn("leaving <isRepresentatieVan> empty: %v", err)
		} else {
			bestand.IsRepresentatieVan = verwijzing
		}
	}

	if result := bestand.Validate(); !result.OK() {
		if b.strict {
			return nil, result.Err()
		}
		for _, v := range result.Violations {
			b.log.Warn("%s", v)
		}
	}

	b.log.Verbose("described %s (%d bytes)", in.Path(), in.Size())
	return bestand, nil
}

func (b *Builder) checksumInput(in *files.Input) (*mdto.ChecksumGegevens, error) {
	r, err := in.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sum, err := checksum.Reader(r, b.calc, b.now())
	if err != nil {
		return nil, fmt.Errorf("checksumming %s: %w", in.Path(), err)
	}
	return sum, nil
}

// deriveVerwijzing loads the represented object's document and derives
// the reference to it.
func (b *Builder) deriveVerwijzing(objectPath string) (*mdto.VerwijzingGegevens, error) {
	parsed, err := mdto.FromFile(objectPath)
	if err != nil {
		return nil, err
	}
	object, ok := parsed.(*mdto.Informatieobject)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds a <%s>, isRepresentatieVan must reference an informatieobject",
			mdto.ErrInvalidInput, objectPath, parsed.Tag())
	}
	return object.Verwijzing()
}

// pairIdentificaties zips kenmerk and bron lists into identificatie
// records.
func pairIdentificaties(kenmerken, bronnen []string) ([]mdto.IdentificatieGegevens, error) {
	if len(kenmerken) == 0 {
		return nil, fmt.Errorf("%w: at least one identificatie kenmerk is required", mdto.ErrInvalidInput)
	}
	if len(kenmerken) != len(bronnen) {
		return nil, fmt.Errorf("%w: %d kenmerk values against %d bron values, counts must match",
			mdto.ErrInvalidInput, len(kenmerken), len(bronnen))
	}

	ids := make([]mdto.IdentificatieGegevens, len(kenmerken))
	for i := range kenmerken {
		ids[i] = mdto.IdentificatieGegevens{Kenmerk: kenmerken[i], Bron: bronnen[i]}
	}
	return ids, nil
}

// Checksum refreshes fixity for a single file outside the full
// pipeline.
func Checksum(path, algorithm string, now time.Time) (*mdto.ChecksumGegevens, error) {
	calc, err := checksum.New(algorithm)
	if err != nil {
		return nil, err
	}
	return checksum.File(path, calc, now)
}
