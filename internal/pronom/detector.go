// Package pronom identifies file formats against the PRONOM register
// using the fido command line tool.
package pronom

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// BegrippenlijstNaam is the concept list recorded with every detected
// format.
const BegrippenlijstNaam = "PRONOM-register"

// fido output templates. The match line carries a trailing comma so a
// line can be parsed even when the format name itself contains commas.
const (
	matchFormat  = "OK,%(info.formatname)s,%(info.puid)s,\n"
	noMatchValue = "FAIL"
)

// runner executes fido against a file and returns its captured output.
// It is a seam for tests, which substitute canned output.
type runner func(ctx context.Context, path string) (stdout, stderr string, err error)

// Detector identifies file formats by shelling out to fido.
type Detector struct {
	log mdto.Logger
	run runner
}

// NewDetector creates a Detector that logs progress and anomalies
// through log.
func NewDetector(log mdto.Logger) *Detector {
	return &Detector{log: log, run: runFido}
}

// Detect identifies the format of the file at path and returns it as a
// PRONOM concept: the format name as label, the PUID as code.
//
// fido sometimes reports several candidate formats. The first match
// wins, which mirrors how fido itself ranks candidates. A failed run
// that still produced matches is downgraded to a warning; a run
// without any match is ErrDetection.
func (d *Detector) Detect(ctx context.Context, path string) (*mdto.BegripGegevens, error) {
	stdout, stderr, runErr := d.run(ctx, path)

	matches := parseMatches(stdout)
	if runErr != nil {
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: fido failed on %s: %v", mdto.ErrDetection, path, runErr)
		}
		d.log.Warn("fido exited abnormally on %s, continuing with its output", path)
	}

	if strings.Contains(stderr, "(empty)") {
		d.log.Warn("%s appears to be an empty file", path)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: fido found no matching file format for %s", mdto.ErrDetection, path)
	}
	if len(matches) > 1 {
		d.log.Info("fido found %d matches for %s, selecting %s", len(matches), path, matches[0].puid)
	}

	m := matches[0]
	d.log.Verbose("detected %s as %s (%s)", path, m.formatName, m.puid)
	return &mdto.BegripGegevens{
		Label:          m.formatName,
		Code:           m.puid,
		Begrippenlijst: mdto.VerwijzingGegevens{Naam: BegrippenlijstNaam},
	}, nil
}

type match struct {
	formatName string
	puid       string
}

// parseMatches extracts format matches from fido stdout. Lines that do
// not follow the OK template, including the FAIL marker, are skipped.
func parseMatches(stdout string) []match {
	var matches []match
	for _, line := range strings.Split(stdout, "\n") {
		body, ok := strings.CutPrefix(line, "OK,")
		if !ok {
			continue
		}
		body = strings.TrimSuffix(body, ",")

		// The PUID never contains a comma, the format name may.
		idx := strings.LastIndex(body, ",")
		if idx < 0 {
			continue
		}
		matches = append(matches, match{
			formatName: body[:idx],
			puid:       body[idx+1:],
		})
	}
	return matches
}

// runFido invokes the fido executable against path.
func runFido(ctx context.Context, path string) (string, string, error) {
	bin, err := exec.LookPath("fido")
	if err != nil {
		return "", "", fmt.Errorf("%w: fido not found on PATH, install it with 'pip install opf-fido'", mdto.ErrDetection)
	}

	cmd := exec.CommandContext(ctx, bin,
		"-q",
		"-matchprintf", matchFormat,
		"-nomatchprintf", noMatchValue,
		path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), stderr.String(), err
}
