package extract

import (
	"fmt"
	"regexp"

	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// Section groups catalog rules by the part of the document they read.
type Section string

const (
	SectionIdentity       Section = "identity"
	SectionEmployment     Section = "employment"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
	SectionProficiency    Section = "proficiency"
)

// DeriveFunc maps the primary match (full match followed by capture groups)
// and the located context sentence, "" when absent, to output records.
type DeriveFunc func(m []string, context string) ([]entity.Record, error)

// Rule is one independent entry of the extraction catalog. A pattern rule
// has Match and Derive; a fixture rule has neither and always contributes
// Fixed.
type Rule struct {
	Name    string
	Section Section
	Match   *regexp.Regexp
	Context *regexp.Regexp
	Derive  DeriveFunc
	Fixed   []entity.Record
}

// Pattern builds a rule derived from the document text.
func Pattern(section Section, name, expr string, derive DeriveFunc) Rule {
	return Rule{
		Name:    name,
		Section: section,
		Match:   regexp.MustCompile(expr),
		Derive:  derive,
	}
}

// Fixture builds a static rule whose records do not depend on the text.
func Fixture(section Section, name string, records ...entity.Record) Rule {
	return Rule{Name: name, Section: section, Fixed: records}
}

// WithContext returns a copy of r that locates a supporting sentence with expr.
func (r Rule) WithContext(expr string) Rule {
	r.Context = regexp.MustCompile(expr)
	return r
}

// IsFixture reports whether r is a static, sample-specific entry.
func (r Rule) IsFixture() bool { return r.Match == nil }

// Apply evaluates the rule against text. A non-matching pattern contributes
// nothing. A panic inside Derive is returned as an error.
func (r Rule) Apply(text string) (out []entity.Record, err error) {
	if r.IsFixture() {
		return append([]entity.Record(nil), r.Fixed...), nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	m := r.Match.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	context := ""
	if r.Context != nil {
		context = r.Context.FindString(text)
	}
	return r.Derive(m, context)
}

// Catalog is an ordered list of rules.
type Catalog []Rule

// Fixtures returns the static entries of the catalog.
func (c Catalog) Fixtures() Catalog {
	var out Catalog
	for _, r := range c {
		if r.IsFixture() {
			out = append(out, r)
		}
	}
	return out
}

// Section returns the rules of one section, in catalog order.
func (c Catalog) Section(s Section) Catalog {
	var out Catalog
	for _, r := range c {
		if r.Section == s {
			out = append(out, r)
		}
	}
	return out
}
