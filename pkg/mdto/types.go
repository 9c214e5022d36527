package mdto

import (
	"fmt"

	"github.com/beevik/etree"
)

// IdentificatieGegevens is a kenmerk plus the bron (registration system or
// agency) that issued it. Every MDTO object carries at least one.
type IdentificatieGegevens struct {
	Kenmerk string
	Bron    string
}

func (g *IdentificatieGegevens) fields() []field {
	return []field{
		text("identificatieKenmerk", &g.Kenmerk),
		text("identificatieBron", &g.Bron),
	}
}

const (
	tagVerwijzingNaam          = "verwijzingNaam"
	tagVerwijzingIdentificatie = "verwijzingIdentificatie"
)

// VerwijzingGegevens is a reference to another described object or listed
// resource: a name plus, optionally, one of the target's identifications.
type VerwijzingGegevens struct {
	Naam          string
	Identificatie *IdentificatieGegevens
}

func (g *VerwijzingGegevens) fields() []field {
	return []field{
		text(tagVerwijzingNaam, &g.Naam),
		optRec(tagVerwijzingIdentificatie, &g.Identificatie),
	}
}

// unmarshalElement decodes a reference by its structure: one child element
// is a bare name, two children are a name followed by an identification.
// Any other shape is a schema violation.
func (g *VerwijzingGegevens) unmarshalElement(el *etree.Element) error {
	kids := el.ChildElements()
	switch len(kids) {
	case 1:
		if kids[0].Tag != tagVerwijzingNaam {
			return fmt.Errorf("%w: expected <%s> in <%s>, found <%s>",
				ErrSchemaViolation, tagVerwijzingNaam, el.Tag, kids[0].Tag)
		}
		g.Naam = kids[0].Text()
		return nil
	case 2:
		if kids[0].Tag != tagVerwijzingNaam || kids[1].Tag != tagVerwijzingIdentificatie {
			return fmt.Errorf("%w: <%s> must hold <%s> followed by <%s>",
				ErrSchemaViolation, el.Tag, tagVerwijzingNaam, tagVerwijzingIdentificatie)
		}
		g.Naam = kids[0].Text()
		g.Identificatie = new(IdentificatieGegevens)
		return unmarshalRecord(kids[1], g.Identificatie)
	default:
		return fmt.Errorf("%w: <%s> must hold one or two children, found %d",
			ErrSchemaViolation, el.Tag, len(kids))
	}
}

// BegripGegevens is a term taken from a listed vocabulary: the label, an
// optional code, and the reference to the begrippenlijst defining the term.
// The schema puts the list reference last.
type BegripGegevens struct {
	Label          string
	Code           string
	Begrippenlijst VerwijzingGegevens
}

func (g *BegripGegevens) fields() []field {
	return []field{
		text("begripLabel", &g.Label),
		optText("begripCode", &g.Code),
		rec("begripBegrippenlijst", &g.Begrippenlijst),
	}
}

// TermijnGegevens is a retention or restriction term. Every part is
// optional.
type TermijnGegevens struct {
	TriggerStartLooptijd *BegripGegevens
	StartdatumLooptijd   string
	Looptijd             string
	Einddatum            string
}

func (g *TermijnGegevens) fields() []field {
	return []field{
		optRec("termijnTriggerStartLooptijd", &g.TriggerStartLooptijd),
		optText("termijnStartdatumLooptijd", &g.StartdatumLooptijd),
		optText("termijnLooptijd", &g.Looptijd),
		optText("termijnEinddatum", &g.Einddatum),
	}
}

// ChecksumGegevens is a fixity record: the algorithm, the digest value and
// the moment the digest was computed. Serialized as a checksum element.
type ChecksumGegevens struct {
	Algoritme BegripGegevens
	Waarde    string
	Datum     string
}

func (g *ChecksumGegevens) fields() []field {
	return []field{
		rec("checksumAlgoritme", &g.Algoritme),
		text("checksumWaarde", &g.Waarde),
		text("checksumDatum", &g.Datum),
	}
}

// BeperkingGebruikGegevens is a restriction on the use of the described
// object. Serialized as a beperkingGebruik element.
type BeperkingGebruikGegevens struct {
	Type               BegripGegevens
	NadereBeschrijving string
	Documentatie       []VerwijzingGegevens
	Termijn            *TermijnGegevens
}

func (g *BeperkingGebruikGegevens) fields() []field {
	return []field{
		rec("beperkingGebruikType", &g.Type),
		optText("beperkingGebruikNadereBeschrijving", &g.NadereBeschrijving),
		recs("beperkingGebruikDocumentatie", &g.Documentatie),
		optRec("beperkingGebruikTermijn", &g.Termijn),
	}
}

// DekkingInTijdGegevens is a temporal coverage: a coverage type, a begin
// date and an optional end date. Serialized as a dekkingInTijd element.
type DekkingInTijdGegevens struct {
	Type       BegripGegevens
	Begindatum string
	Einddatum  string
}

func (g *DekkingInTijdGegevens) fields() []field {
	return []field{
		rec("dekkingInTijdType", &g.Type),
		text("dekkingInTijdBegindatum", &g.Begindatum),
		optText("dekkingInTijdEinddatum", &g.Einddatum),
	}
}

// EventGegevens is a lifecycle event of the described object. Serialized as
// an event element.
type EventGegevens struct {
	Type                   BegripGegevens
	Tijd                   string
	VerantwoordelijkeActor *VerwijzingGegevens
	Resultaat              string
}

func (g *EventGegevens) fields() []field {
	return []field{
		rec("eventType", &g.Type),
		optText("eventTijd", &g.Tijd),
		optRec("eventVerantwoordelijkeActor", &g.VerantwoordelijkeActor),
		optText("eventResultaat", &g.Resultaat),
	}
}

// RaadpleeglocatieGegevens is a consultation location, physical or online.
// Both parts are optional; the schema even allows the element to be empty.
// Serialized as a raadpleeglocatie element.
type RaadpleeglocatieGegevens struct {
	Fysiek *VerwijzingGegevens
	Online []string
}

func (g *RaadpleeglocatieGegevens) fields() []field {
	return []field{
		optRec("raadpleeglocatieFysiek", &g.Fysiek),
		texts("raadpleeglocatieOnline", &g.Online),
	}
}

// GerelateerdInformatieobjectGegevens relates the described object to
// another information object. Serialized as a gerelateerdInformatieobject
// element.
type GerelateerdInformatieobjectGegevens struct {
	Verwijzing  VerwijzingGegevens
	TypeRelatie BegripGegevens
}

func (g *GerelateerdInformatieobjectGegevens) fields() []field {
	return []field{
		rec("gerelateerdInformatieobjectVerwijzing", &g.Verwijzing),
		rec("gerelateerdInformatieobjectTypeRelatie", &g.TypeRelatie),
	}
}

// BetrokkeneGegevens is an actor involved with the described object plus
// the nature of the involvement. Serialized as a betrokkene element.
type BetrokkeneGegevens struct {
	TypeRelatie BegripGegevens
	Actor       VerwijzingGegevens
}

func (g *BetrokkeneGegevens) fields() []field {
	return []field{
		rec("betrokkeneTypeRelatie", &g.TypeRelatie),
		rec("betrokkeneActor", &g.Actor),
	}
}

// Informatieobject describes an information object: an archival piece, a
// dossier or a series. The field table follows the MDTO schema sequence.
type Informatieobject struct {
	Identificatie               []IdentificatieGegevens
	Naam                        string
	Aggregatieniveau            *BegripGegevens
	Classificatie               *BegripGegevens
	Trefwoord                   []string
	Omschrijving                string
	Raadpleeglocatie            *RaadpleeglocatieGegevens
	DekkingInTijd               *DekkingInTijdGegevens
	DekkingInRuimte             *VerwijzingGegevens
	Taal                        string
	Event                       []EventGegevens
	Waardering                  BegripGegevens
	Bewaartermijn               *TermijnGegevens
	Informatiecategorie         *BegripGegevens
	IsOnderdeelVan              *VerwijzingGegevens
	BevatOnderdeel              []VerwijzingGegevens
	HeeftRepresentatie          *VerwijzingGegevens
	AanvullendeMetagegevens     []VerwijzingGegevens
	GerelateerdInformatieobject *GerelateerdInformatieobjectGegevens
	Archiefvormer               []VerwijzingGegevens
	Betrokkene                  []BetrokkeneGegevens
	Activiteit                  *VerwijzingGegevens
	BeperkingGebruik            []BeperkingGebruikGegevens
}

func (o *Informatieobject) fields() []field {
	return []field{
		recsRequired("identificatie", &o.Identificatie),
		text("naam", &o.Naam),
		optRec("aggregatieniveau", &o.Aggregatieniveau),
		optRec("classificatie", &o.Classificatie),
		texts("trefwoord", &o.Trefwoord),
		optText("omschrijving", &o.Omschrijving),
		optRec("raadpleeglocatie", &o.Raadpleeglocatie),
		optRec("dekkingInTijd", &o.DekkingInTijd),
		optRec("dekkingInRuimte", &o.DekkingInRuimte),
		optText("taal", &o.Taal),
		recs("event", &o.Event),
		rec("waardering", &o.Waardering),
		optRec("bewaartermijn", &o.Bewaartermijn),
		optRec("informatiecategorie", &o.Informatiecategorie),
		optRec("isOnderdeelVan", &o.IsOnderdeelVan),
		recs("bevatOnderdeel", &o.BevatOnderdeel),
		optRec("heeftRepresentatie", &o.HeeftRepresentatie),
		recs("aanvullendeMetagegevens", &o.AanvullendeMetagegevens),
		optRec("gerelateerdInformatieobject", &o.GerelateerdInformatieobject),
		recsRequired("archiefvormer", &o.Archiefvormer),
		recs("betrokkene", &o.Betrokkene),
		optRec("activiteit", &o.Activiteit),
		recsRequired("beperkingGebruik", &o.BeperkingGebruik),
	}
}

// Tag returns the element name of an information object inside the MDTO
// wrapper.
func (o *Informatieobject) Tag() string { return "informatieobject" }

// Verwijzing derives the reference by which other objects point at this
// information object: its naam plus its first identificatie, when present.
// An object without a naam cannot be referenced.
func (o *Informatieobject) Verwijzing() (*VerwijzingGegevens, error) {
	if o.Naam == "" {
		return nil, fmt.Errorf("%w: informatieobject lacks a <naam>", ErrMissingField)
	}
	v := &VerwijzingGegevens{Naam: o.Naam}
	if len(o.Identificatie) > 0 {
		id := o.Identificatie[0]
		v.Identificatie = &id
	}
	return v, nil
}

// Bestand describes a file holding a representation of an information
// object. bestandsformaat and isRepresentatieVan are required by the schema
// but may be left nil when generation ran without strict mode and a
// collaborator failed; serialization then omits them instead of writing
// empty elements.
type Bestand struct {
	Identificatie      []IdentificatieGegevens
	Naam               string
	Omvang             int64
	Bestandsformaat    *BegripGegevens
	Checksum           []ChecksumGegevens
	URLBestand         string
	IsRepresentatieVan *VerwijzingGegevens
}

func (b *Bestand) fields() []field {
	return []field{
		recsRequired("identificatie", &b.Identificatie),
		text("naam", &b.Naam),
		number("omvang", &b.Omvang),
		optRec("bestandsformaat", &b.Bestandsformaat),
		recs("checksum", &b.Checksum),
		optText("URLBestand", &b.URLBestand),
		optRec("isRepresentatieVan", &b.IsRepresentatieVan),
	}
}

// Tag returns the element name of a bestand inside the MDTO wrapper.
func (b *Bestand) Tag() string { return "bestand" }

// Object is a top-level MDTO object, one per document: an Informatieobject
// or a Bestand.
type Object interface {
	record

	// Tag returns the object's element name inside the MDTO wrapper.
	Tag() string

	// Validate checks the rules that are not structural, such as name
	// length and URL syntax. It never mutates the object.
	Validate() ValidationResult
}

var (
	_ Object = (*Informatieobject)(nil)
	_ Object = (*Bestand)(nil)
)
