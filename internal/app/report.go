package app

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/zpkg/internal/adapters/detector" //nolint:depguard // Output styling
	"go.trai.ch/zpkg/internal/adapters/docstore" //nolint:depguard // Same rendering as persisted manifests
	"go.trai.ch/zpkg/internal/engine/descriptor"
	"go.trai.ch/zpkg/internal/ui/output"
	"go.trai.ch/zpkg/internal/ui/style"
)

// reporter prints human-readable reports, colored only on interactive terminals.
type reporter struct {
	out *termenv.Output
}

func newReporter(w io.Writer) *reporter {
	return &reporter{
		out: output.NewWithProfile(w, func() termenv.Profile {
			if !detector.IsInteractive(w) {
				return termenv.Ascii
			}
			return output.ColorProfile()
		}),
	}
}

func (r *reporter) color(s string, c string) string {
	return r.out.String(s).Foreground(termenv.RGBColor(c)).String()
}

func (r *reporter) println(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *reporter) pkg(pkg *descriptor.Package) {
	name := pkg.Name()
	if name == "" {
		name = "(unnamed)"
	}
	header := name
	if v := pkg.Version(); v != "" {
		header += "@" + v
	}

	r.println("%s", r.out.String(header).Bold().Foreground(termenv.RGBColor(string(style.Iris))).String())
	r.println("  zosversion  %s", pkg.SchemaVersion())
	r.println("  kind        %s", kind(pkg))
	if extra := pkg.Manifest().Extra(); len(extra) > 0 {
		r.println("  other keys  %s", strings.Join(sortedKeys(extra), ", "))
	}

	r.println("  dependencies")
	if !pkg.HasDependencies() {
		r.println("    %s", r.color("none", string(style.Slate)))
	}
	for _, dep := range pkg.DependencyNames() {
		constraint, _ := pkg.DependencyVersion(dep)
		r.println("    %s %s", dep, constraint)
	}

	r.println("  contracts")
	if !pkg.HasContracts() {
		r.println("    %s", r.color("none", string(style.Slate)))
	}
	for _, alias := range pkg.ContractAliases() {
		contract, _ := pkg.Contract(alias)
		if contract == alias {
			r.println("    %s", alias)
			continue
		}
		r.println("    %s → %s", alias, contract)
	}
}

func (r *reporter) manifestJSON(pkg *descriptor.Package) error {
	doc, err := pkg.Manifest().Encode()
	if err != nil {
		return err
	}
	data, err := docstore.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.out.Write(data)
	return err
}

func (r *reporter) satisfied(name, version, constraint string) {
	r.println("%s %s %s satisfies %s", r.color(style.Check, string(style.Green)), name, version, constraint)
}

func (r *reporter) network(report NetworkReport) {
	if !report.Exists {
		r.println("%s %s %s", r.color(style.Circle, string(style.Slate)), report.Network,
			r.color("not deployed ("+report.Path+")", string(style.Slate)))
		return
	}

	r.println("%s %s %s", r.color(style.Dot, string(style.Iris)), report.Network, r.color(report.Path, string(style.Slate)))

	version := report.Version
	if version == "" {
		version = "unversioned"
	}
	mark := r.color(style.Check, string(style.Green))
	if !report.VersionMatches {
		mark = r.color(style.Cross+" outdated", string(style.Red))
	}
	r.println("  version     %s %s", version, mark)

	if report.Frozen {
		r.println("  frozen      yes")
	}

	if len(report.Contracts) > 0 {
		r.println("  contracts   %s", strings.Join(report.Contracts, ", "))
	}

	if len(report.OtherKeys) > 0 {
		r.println("  other keys  %s", strings.Join(report.OtherKeys, ", "))
	}

	if len(report.Unsatisfied) > 0 {
		r.println("  %s unsatisfied %s", r.color(style.Warning, string(style.Yellow)), strings.Join(report.Unsatisfied, ", "))
	}
}

func kind(pkg *descriptor.Package) string {
	switch {
	case pkg.IsLib():
		return "library"
	case pkg.IsLightweight():
		return "lightweight"
	default:
		return "published"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
