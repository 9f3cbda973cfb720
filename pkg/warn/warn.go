package warn

import (
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Phase selects the `init` deprecation notice.
type Phase string

const (
	// PhaseRunning only echoes the replacement command.
	PhaseRunning Phase = "running"
	// PhaseNotice announces the deprecation.
	PhaseNotice Phase = "notice"
	// PhaseSunset announces the deprecation with a countdown to [Cutoff].
	PhaseSunset Phase = "sunset"
)

// ParsePhase parses a phase name. An empty string selects [PhaseNotice].
func ParsePhase(s string) (Phase, error) {
	switch p := Phase(s); p {
	case "":
		return PhaseNotice, nil
	case PhaseRunning, PhaseNotice, PhaseSunset:
		return p, nil
	}

	return "", fmt.Errorf("unknown deprecation phase %q", s)
}

const docsURL = "https://reactnative.dev/docs/getting-started"

// Cutoff is the date after which `init` changes behavior.
var Cutoff = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

// Urgency is the emphasis applied to a countdown.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

// UrgencyFor maps days remaining to an [Urgency].
func UrgencyFor(days int) Urgency {
	switch {
	case days < 10:
		return UrgencyCritical
	case days < 30:
		return UrgencyHigh
	case days < 60:
		return UrgencyMedium
	}

	return UrgencyLow
}

// DaysRemaining returns the whole days from now until cutoff, rounded up.
func DaysRemaining(cutoff, now time.Time) int {
	return int(math.Ceil(cutoff.Sub(now).Hours() / 24))
}

const countdownKey = "(%d days)"

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	err := b.Set(language.English, countdownKey,
		plural.Selectf(1, "%d",
			plural.One, "(%d day)",
			plural.Other, "(%d days)",
		),
	)
	if err != nil {
		panic(err)
	}

	return b
}

// Printer writes warnings to an output stream.
type Printer struct {
	w      io.Writer
	msg    *message.Printer
	now    func() time.Time
	styles styles
}

// NewPrinter returns a [Printer] writing to w.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	return &Printer{
		w:      w,
		msg:    message.NewPrinter(language.AmericanEnglish, message.Catalog(messages)),
		now:    time.Now,
		styles: newStyles(newRenderer(w, mode)),
	}
}

// WithClock replaces the time source used for countdowns.
func (p *Printer) WithClock(now func() time.Time) *Printer {
	p.now = now

	return p
}

// Update warns that current is older than the latest published release of
// pkg.
func (p *Printer) Update(pkg, current, latest string) {
	s := p.styles
	p.printf("\n  %s You should run %s to ensure you're always using the most current version of the CLI. "+
		"NPX has cached version (%s) != current release (%s)\n\n",
		s.boldYellow.Render("WARNING:"),
		s.boldWhite.Render("npx "+pkg+"@latest"),
		s.boldYellow.Render(current),
		s.boldGreen.Render(latest),
	)
}

// Deprecation prints the `init` deprecation notice for phase, pointing at
// the init command of cliPackage.
func (p *Printer) Deprecation(phase Phase, cliPackage string) {
	replacement := "npx " + cliPackage + " init"

	switch phase {
	case PhaseRunning:
		p.Running(replacement)
	case PhaseSunset:
		p.sunset(replacement)
	default:
		p.notice(replacement)
	}
}

// Running echoes the command being run in place of the deprecated one.
func (p *Printer) Running(command string) {
	p.printf("\nRunning: %s\n\n", p.styles.boldGrey.Render(command))
}

func (p *Printer) notice(replacement string) {
	s := p.styles
	p.printf("\n%s The `init` command is deprecated.\n\n"+
		"- Switch to %s for the identical behavior.\n"+
		"- Refer to the documentation for information about alternative tools: %s\n\n",
		s.yellow.Render("🚨️"),
		s.dim.Render(replacement),
		s.dim.Render(docsURL),
	)
}

func (p *Printer) sunset(replacement string) {
	s := p.styles

	days := max(DaysRemaining(Cutoff, p.now()), 0)
	countdown := p.msg.Sprintf(countdownKey, days)

	emphasis := s.blue
	switch UrgencyFor(days) {
	case UrgencyCritical:
		emphasis = s.boldRed
	case UrgencyHigh:
		emphasis = s.red
	case UrgencyMedium:
		emphasis = s.green
	}

	p.printf("\n%s The `init` command is deprecated.\n"+
		"The behavior will be changed on %s %s.\n\n"+
		"- Switch to %s for the identical behavior.\n"+
		"- Refer to the documentation for information about alternative tools: %s\n\n",
		s.yellow.Render("⚠️"),
		s.boldWhite.Render(Cutoff.Format("1/2/2006")),
		emphasis.Render(countdown),
		replacement,
		s.dim.Render(docsURL),
	)
}

// MissingDependency explains how to install cliPackage, which pkg needs to
// run any command.
func (p *Printer) MissingDependency(pkg, cliPackage string) {
	s := p.styles
	snippet := fmt.Sprintf("  \"devDependencies\": {\n    %q: \"latest\",\n  }", cliPackage)

	p.printf("\n%s %s depends on %s for cli commands. To fix update your %s to include:\n\n%s\n\n",
		s.yellow.Render("⚠️"),
		pkg,
		cliPackage,
		s.bold.Render("package.json"),
		paint(s.boldWhite, snippet),
	)
}

func (p *Printer) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.w, format, a...)
}
