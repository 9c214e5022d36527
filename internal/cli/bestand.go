package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/internal/builder"
	"github.com/archiefkit/mdto/internal/checksum"
	"github.com/archiefkit/mdto/internal/config"
	"github.com/archiefkit/mdto/internal/files"
	"github.com/archiefkit/mdto/internal/identity"
	"github.com/archiefkit/mdto/internal/ui"
	"github.com/archiefkit/mdto/pkg/mdto"
)

var bestandCmd = &cobra.Command{
	Use:   "bestand <bestand>...",
	Short: "Describe files as MDTO bestand documents",
	Long: `Describe one or more files as MDTO bestand documents.

For each input file the technical metadata is derived from the file
itself: <omvang> from its size, <bestandsformaat> from fido's PRONOM
match and <checksum> from hashing its content. The --informatieobject
flag points at the MDTO document of the object the file represents and
fills <isRepresentatieVan> from its identificatie and naam.

A single input is written to stdout, or to --output. Multiple inputs
(or glob patterns such as 'scans/**/*.pdf') require --output-dir, which
receives one <input>.xml per file. Identities come either from
--kenmerk/--bron pairs or, with --auto-id, as stable UUIDs derived from
each file path.`,
	Example: `  mdto bestand scan-001.pdf --kenmerk INV-0042 --bron Depotregister
  mdto bestand scan-001.pdf -k INV-0042 -b Depotregister --informatieobject dossier.mdto.xml -o scan-001.pdf.xml
  mdto bestand 'scans/**/*.tiff' --auto-id --output-dir mdto/`,
	Args: RequireInputPaths,
	RunE: runBestand,
}

// bestandFlagValues holds the flag targets for the bestand command.
type bestandFlagValues struct {
	kenmerken        []string
	bronnen          []string
	informatieobject string
	naam             string
	url              string
	output           string
	outputDir        string
	algoritme        string
	autoID           bool
	strict           bool
	force            bool
}

var bestandFlags bestandFlagValues

func init() {
	f := bestandCmd.Flags()
	f.StringArrayVarP(&bestandFlags.kenmerken, "kenmerk", "k", nil,
		"Identificatiekenmerk of the bestand (repeatable)")
	f.StringArrayVarP(&bestandFlags.bronnen, "bron", "b", nil,
		"Agency that issued the matching --kenmerk\n(one per kenmerk, or a single value for all)")
	f.StringVarP(&bestandFlags.informatieobject, "informatieobject", "O", "",
		"MDTO document of the informatieobject this bestand represents")
	f.StringVarP(&bestandFlags.naam, "naam", "n", "",
		"Override the recorded name (default: the file name)")
	f.StringVarP(&bestandFlags.url, "url", "u", "",
		"Publicly accessible URL of the bestand")
	f.StringVarP(&bestandFlags.output, "output", "o", "",
		"Write the document here instead of stdout")
	f.StringVar(&bestandFlags.outputDir, "output-dir", "",
		"Write one <input>.xml per input file into this directory")
	f.StringVar(&bestandFlags.algoritme, "algoritme", "",
		"Checksum algorithm: "+strings.Join(checksum.Names(), ", ")+
			" (default "+checksum.DefaultAlgorithm+")")
	f.BoolVar(&bestandFlags.autoID, "auto-id", false,
		"Derive a stable UUID kenmerk from each file path")
	f.BoolVar(&bestandFlags.strict, "strict", false,
		"Escalate detection, derivation and validation warnings to errors")
	f.BoolVarP(&bestandFlags.force, "force", "f", false,
		"Replace existing output files without asking")

	_ = bestandCmd.RegisterFlagCompletionFunc("algoritme", completeAlgorithms)

	rootCmd.AddCommand(bestandCmd)
}

// bestandJob is the fully resolved work for one input file.
type bestandJob struct {
	input     string
	kenmerken []string
	bronnen   []string
	naam      string
	url       string
	output    string // empty writes to stdout
}

// bestandConfig is the resolved configuration for one bestand run.
type bestandConfig struct {
	jobs       []bestandJob
	objectPath string
	algorithm  string
	outputDir  string
	strict     bool
	force      bool
}

func runBestand(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	inputs, err := files.Expand(args)
	if err != nil {
		return err
	}

	cfg, err := buildBestandConfig(cmd, st.cfg, inputs)
	if err != nil {
		return err
	}

	b, err := builder.New(builder.Options{
		Algorithm: cfg.algorithm,
		Strict:    cfg.strict,
		Logger:    st.log,
	})
	if err != nil {
		return err
	}

	if cfg.outputDir != "" {
		if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, job := range cfg.jobs {
		if err := runBestandJob(cmd.Context(), b, cfg, job, st.log); err != nil {
			return err
		}
	}

	if cfg.outputDir != "" {
		st.log.Info("wrote %d MDTO documents to %s", len(cfg.jobs), cfg.outputDir)
	}
	return nil
}

func runBestandJob(ctx context.Context, b *builder.Builder, cfg *bestandConfig, job bestandJob, log mdto.Logger) error {
	if job.output != "" {
		if err := gateOverwrite(ctx, job.output, cfg.force, log); err != nil {
			return err
		}
	}

	bestand, err := b.Bestand(ctx, builder.Request{
		Path:       job.input,
		Kenmerken:  job.kenmerken,
		Bronnen:    job.bronnen,
		ObjectPath: cfg.objectPath,
		Naam:       job.naam,
		URL:        job.url,
	})
	if err != nil {
		return err
	}

	if job.output == "" {
		return mdto.WriteDocument(os.Stdout, bestand)
	}
	if err := writeDocumentFile(job.output, bestand); err != nil {
		return err
	}
	log.Info("wrote %s", job.output)
	return nil
}

// buildBestandConfig resolves flags, project config and the expanded
// input list into per-file jobs. It owns all mode validation: single
// versus batch output, explicit kenmerken versus --auto-id.
func buildBestandConfig(cmd *cobra.Command, cfg *config.ProjectConfig, inputs []string) (*bestandConfig, error) {
	flags := bestandFlags

	bc := &bestandConfig{
		objectPath: flags.informatieobject,
		algorithm:  stringSetting(cmd, "algoritme", flags.algoritme, cfg.Algoritme),
		outputDir:  flags.outputDir,
		strict:     boolSetting(cmd, "strict", flags.strict, cfg.Strict),
		force:      flags.force,
	}

	batch := bc.outputDir != ""
	if len(inputs) > 1 && !batch {
		return nil, fmt.Errorf("%w: describing %d files requires --output-dir", mdto.ErrInvalidInput, len(inputs))
	}
	if batch {
		if flags.output != "" {
			return nil, fmt.Errorf("%w: --output cannot be combined with --output-dir", mdto.ErrInvalidInput)
		}
		if flags.naam != "" {
			return nil, fmt.Errorf("%w: --naam applies to a single bestand, not to --output-dir batches", mdto.ErrInvalidInput)
		}
		if flags.url != "" {
			return nil, fmt.Errorf("%w: --url applies to a single bestand, set url_prefix in %s for batches",
				mdto.ErrInvalidInput, config.ConfigFileName)
		}
	}

	jobs, err := resolveJobs(flags.kenmerken, flags.bronnen, flags.autoID, cfg.Bron, inputs, batch)
	if err != nil {
		return nil, err
	}

	for i := range jobs {
		if batch {
			jobs[i].output = outputPath(bc.outputDir, jobs[i].input)
			if cfg.URLPrefix != "" {
				jobs[i].url = deriveURL(cfg.URLPrefix, jobs[i].input)
			}
			continue
		}
		jobs[i].output = flags.output
		jobs[i].naam = flags.naam
		jobs[i].url = flags.url
		if jobs[i].url == "" && cfg.URLPrefix != "" {
			jobs[i].url = deriveURL(cfg.URLPrefix, jobs[i].input)
		}
	}
	bc.jobs = jobs
	return bc, nil
}

// resolveJobs assigns identities to inputs. With --auto-id every file
// gets a UUID derived from its path; otherwise batches take exactly one
// --kenmerk per file in order, and a single input takes all of them.
func resolveJobs(kenmerken, bronnen []string, autoID bool, configBron string, inputs []string, batch bool) ([]bestandJob, error) {
	jobs := make([]bestandJob, len(inputs))
	for i, input := range inputs {
		jobs[i].input = input
	}

	if autoID {
		if len(kenmerken) > 0 {
			return nil, fmt.Errorf("%w: --auto-id and --kenmerk are mutually exclusive", mdto.ErrInvalidInput)
		}
		if len(bronnen) > 1 {
			return nil, fmt.Errorf("%w: --auto-id takes a single --bron for all files", mdto.ErrInvalidInput)
		}
		bron := configBron
		if len(bronnen) == 1 {
			bron = bronnen[0]
		}
		if bron == "" {
			return nil, fmt.Errorf("%w: --auto-id requires a bron, pass --bron or set bron in %s",
				mdto.ErrInvalidInput, config.ConfigFileName)
		}
		for i := range jobs {
			id := identity.Generate(jobs[i].input, bron)
			jobs[i].kenmerken = []string{id.Kenmerk}
			jobs[i].bronnen = []string{id.Bron}
		}
		return jobs, nil
	}

	if len(kenmerken) == 0 {
		return nil, fmt.Errorf("%w: at least one --kenmerk is required, or pass --auto-id", mdto.ErrInvalidInput)
	}

	if batch || len(inputs) > 1 {
		if len(kenmerken) != len(inputs) {
			return nil, fmt.Errorf("%w: %d --kenmerk values for %d input files, batches take exactly one kenmerk per file in order",
				mdto.ErrInvalidInput, len(kenmerken), len(inputs))
		}
		filled, err := fillBronnen(kenmerken, bronnen, configBron)
		if err != nil {
			return nil, err
		}
		for i := range jobs {
			jobs[i].kenmerken = []string{kenmerken[i]}
			jobs[i].bronnen = []string{filled[i]}
		}
		return jobs, nil
	}

	filled, err := fillBronnen(kenmerken, bronnen, configBron)
	if err != nil {
		return nil, err
	}
	jobs[0].kenmerken = kenmerken
	jobs[0].bronnen = filled
	return jobs, nil
}

// fillBronnen pairs a bron with every kenmerk: one each, a single bron
// replicated, or the configured bron when none was passed.
func fillBronnen(kenmerken, bronnen []string, configBron string) ([]string, error) {
	switch {
	case len(bronnen) == len(kenmerken):
		return bronnen, nil
	case len(bronnen) == 1:
		filled := make([]string, len(kenmerken))
		for i := range filled {
			filled[i] = bronnen[0]
		}
		return filled, nil
	case len(bronnen) == 0 && configBron != "":
		filled := make([]string, len(kenmerken))
		for i := range filled {
			filled[i] = configBron
		}
		return filled, nil
	}
	return nil, fmt.Errorf("%w: %d --bron values for %d --kenmerk values, pass one bron per kenmerk, a single bron for all, or set bron in %s",
		mdto.ErrInvalidInput, len(bronnen), len(kenmerken), config.ConfigFileName)
}

// outputPath names the document for one input file: the file name plus
// .xml, inside dir. Keeping the original extension avoids collisions
// between inputs like scan.pdf and scan.tiff.
func outputPath(dir, input string) string {
	return filepath.Join(dir, filepath.Base(input)+".xml")
}

// deriveURL joins the configured prefix and the escaped file name.
func deriveURL(prefix, input string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + url.PathEscape(filepath.Base(input))
}

// gateOverwrite decides whether path may be replaced. Missing files
// pass. Existing files need --force or an interactive yes.
func gateOverwrite(ctx context.Context, path string, force bool, log mdto.Logger) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}

	var approver ui.Approver
	switch {
	case force:
		approver = ui.NewForcedApprover(log)
	case ui.Interactive():
		approver = ui.NewInteractiveApprover()
	default:
		return fmt.Errorf("%w: %s, pass --force to replace it", mdto.ErrOutputExists, path)
	}

	ok, err := approver.Approve(ctx, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", mdto.ErrOutputExists, path)
	}
	return nil
}

func writeDocumentFile(path string, o mdto.Object) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := mdto.WriteDocument(f, o); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
