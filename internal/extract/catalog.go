package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// Fixed supporting sentences quoted from the reference sample document.
const (
	nationalityComment   = "Citizenship status is important for understanding his work authorization and visa requirements across different employment opportunities."
	promotionComment     = "Promoted in 2019"
	highSchoolComment    = "His core subjects included Mathematics, Physics, Chemistry, and Computer Science, demonstrating his early aptitude for technical disciplines."
	undergradYearComment = "Graduating with honors and ranking 15th among 120 students in his class."
	gradCollegeComment   = "Continued academic excellence at IIT Bombay"
	thesisComment        = "Considered exceptional and scoring 95 out of 100 for his final year thesis project"
	certificationComment = "Vijay's commitment to continuous learning is evident through his impressive certification scores. He passed the AWS Solutions Architect exam in 2019 with a score of 920 out of 1000. Pursued in the year 2020 with 875 points."
	proficiencyComment   = "In terms of technical proficiency, Vijay rates himself highly across various skills, with SQL expertise at a perfect 10 out of 10, reflecting his daily usage since 2012. His Python proficiency scores 9 out of 10, backed by over seven years of practical experience and demonstrate his expertise across multiple technology platforms."
	certificationsTail   = "These certifications complement his practical experience and demonstrate his expertise across multiple technology platforms."
)

var bloodGroupLead = regexp.MustCompile(`^his [A-Z]\+? blood group is noted for `)

// DefaultCatalog returns the ordered rule catalog: identity, employment,
// education, certifications, then technical proficiency.
func DefaultCatalog() Catalog {
	var c Catalog
	c = append(c, identityRules()...)
	c = append(c, employmentRules()...)
	c = append(c, educationRules()...)
	c = append(c, certificationRules()...)
	c = append(c, proficiencyRules()...)
	return c
}

func identityRules() []Rule {
	return []Rule{
		Pattern(SectionIdentity, "full-name", `(\w+\s+\w+)\s+was born`,
			func(m []string, _ string) ([]entity.Record, error) {
				names := strings.Fields(m[1])
				last := ""
				if len(names) > 1 {
					last = names[1]
				}
				return []entity.Record{
					entity.NewRecord("First Name", names[0]),
					entity.NewRecord("Last Name", last),
				}, nil
			}),
		Pattern(SectionIdentity, "date-of-birth", `born on (\w+ \d+, \d{4})`, dated("Date of Birth", 1)),
		Pattern(SectionIdentity, "birth-place", `born on [^,]+(?:, \d{4})?, in (\w+), (\w+)`,
			func(m []string, context string) ([]entity.Record, error) {
				return []entity.Record{
					entity.NewRecord("Birth City", m[1]).WithComments(context),
					entity.NewRecord("Birth State", m[2]).WithComments(context),
				}, nil
			}).
			WithContext(`Born and raised in the Pink City of India, his birthplace provides valuable regional profiling context`),
		Pattern(SectionIdentity, "age", `making him (\d+) years old as of (\d{4})`,
			func(m []string, context string) ([]entity.Record, error) {
				return []entity.Record{entity.NewRecord("Age", m[1]+" years").WithComments(context)}, nil
			}).
			WithContext(`His birthdate is formatted as[^,]+, while his age serves as a key demographic marker for analytical purposes`),
		Pattern(SectionIdentity, "blood-group", `his ([A-Z]\+?) blood group`,
			func(m []string, context string) ([]entity.Record, error) {
				comment := ""
				if context != "" {
					comment = capitalize(bloodGroupLead.ReplaceAllString(context, ""))
				}
				return []entity.Record{entity.NewRecord("Blood Group", m[1]).WithComments(comment)}, nil
			}).
			WithContext(`his [A-Z]\+? blood group is noted for emergency contact purposes`),
		Pattern(SectionIdentity, "nationality", `As an (\w+) national`,
			func(m []string, context string) ([]entity.Record, error) {
				comment := ""
				if context != "" {
					comment = nationalityComment
				}
				return []entity.Record{entity.NewRecord("Nationality", m[1]).WithComments(comment)}, nil
			}).
			WithContext(`his citizenship status is important for understanding his work authorization and visa requirements across different employment opportunities`),
	}
}

func employmentRules() []Rule {
	return []Rule{
		Pattern(SectionEmployment, "first-role",
			`professional journey began on (\w+ \d+, \d{4}), when he joined his first company as a ([^w]+) with an annual salary of ([\d,]+) INR`,
			func(m []string, _ string) ([]entity.Record, error) {
				joined, err := NormalizeDate(m[1])
				if err != nil {
					return nil, err
				}
				return []entity.Record{
					entity.NewRecord("Joining Date of first professional role", joined),
					entity.NewRecord("Designation of first professional role", strings.TrimSpace(m[2])),
					entity.NewRecord("Salary of first professional role", stripCommas(m[3])),
					entity.NewRecord("Salary currency of first professional role", "INR"),
				}, nil
			}),
		Pattern(SectionEmployment, "current-organization", `his current role at ([^b]+) beginning`, trimmedGroup("Current Organization", 1, "")),
		Pattern(SectionEmployment, "current-join-date", `beginning on (\w+ \d+, \d{4})`, dated("Current Joining Date", 1)),
		Pattern(SectionEmployment, "current-designation", `where he serves as a ([^e]+) earning`, trimmedGroup("Current Designation", 1, "")),
		Pattern(SectionEmployment, "current-salary", `earning ([\d,]+) INR annually`,
			func(m []string, context string) ([]entity.Record, error) {
				return []entity.Record{
					entity.NewRecord("Current Salary", stripCommas(m[1])).WithComments(context),
					entity.NewRecord("Current Salary Currency", "INR"),
				}, nil
			}).
			WithContext(`This salary progression from his starting compensation to his current peak salary of 2,800,000 INR represents a substantial eight- ?fold increase over his twelve-year career span`),
		Pattern(SectionEmployment, "previous-organization", `he worked at ([^f]+) from`, trimmedGroup("Previous Organization", 1, "")),
		Pattern(SectionEmployment, "previous-join-date", `from (\w+ \d+, \d{4}), to`, dated("Previous Joining Date", 1)),
		Pattern(SectionEmployment, "previous-end-year", `from [^,]+(?:, \d{4})?, to (\d{4})`, group("Previous end year", 1, "")),
		Pattern(SectionEmployment, "previous-starting-designation", `starting as a ([^a]+) and earning a promotion`,
			trimmedGroup("Previous Starting Designation", 1, promotionComment)),
	}
}

func educationRules() []Rule {
	return []Rule{
		Pattern(SectionEducation, "high-school", `high school education at ([^,]+), Jaipur`, trimmedGroup("High School", 1, highSchoolComment)),
		Pattern(SectionEducation, "12th-year", `12th standard in (\d{4})`, group("12th standard pass out year", 1, "Outstanding achievement")),
		Pattern(SectionEducation, "12th-score", `achieving an outstanding ([\d.]+)% overall score`,
			func(m []string, _ string) ([]entity.Record, error) {
				return []entity.Record{entity.NewRecord("12th overall board score", m[1]+"%")}, nil
			}),
		Pattern(SectionEducation, "undergrad-degree", `He pursued his (B\.Tech[^a]+) at`, trimmedGroup("Undergraduate degree", 1, "")),
		Pattern(SectionEducation, "undergrad-college", `at the prestigious ([^,]+), graduating`, trimmedGroup("Undergraduate college", 1, "")),
		Pattern(SectionEducation, "undergrad-year", `graduating with honors in (\d{4})`, group("Undergraduate year", 1, undergradYearComment)),
		Pattern(SectionEducation, "undergrad-cgpa", `with a CGPA of ([\d.]+) on a 10-point scale`, group("Undergraduate CGPA", 1, "On a 10-point scale")),
		Pattern(SectionEducation, "grad-degree", `earned his (M\.Tech[^i]+) in`, trimmedGroup("Graduation degree", 1, "")),
		Pattern(SectionEducation, "grad-college", `His academic excellence continued at ([^,]+), where he earned`, trimmedGroup("Graduation college", 1, gradCollegeComment)),
		Pattern(SectionEducation, "grad-year", `Data Science in (\d{4})`, group("Graduation year", 1, "")),
		Pattern(SectionEducation, "grad-cgpa", `achieving an exceptional CGPA of ([\d.]+) and scoring (\d+) out of (\d+)`, group("Graduation CGPA", 1, thesisComment)),
	}
}

func certificationRules() []Rule {
	return []Rule{
		Fixture(SectionCertifications, "aws-certification",
			entity.NewRecord("Certifications 1", "AWS Solutions Architect").WithComments(certificationComment)),
		Fixture(SectionCertifications, "azure-certification",
			entity.NewRecord("Certifications 2", "Azure Data Engineer").WithComments(certificationComment)),
		Pattern(SectionCertifications, "pmp-certification",
			`his Project Management Professional certification, obtained in (\d{4}), was achieved with an "([^"]+)" rating`,
			func(m []string, _ string) ([]entity.Record, error) {
				comment := fmt.Sprintf(`Obtained in %s, was achieved with an "%s" rating from PMI. %s`, m[1], m[2], certificationsTail)
				return []entity.Record{
					entity.NewRecord("Certifications 3", "Project Management Professional certification").WithComments(comment),
				}, nil
			}),
		Pattern(SectionCertifications, "safe-certification", `his SAFe Agilist certification earned him an outstanding (\d+)% score`,
			func(m []string, _ string) ([]entity.Record, error) {
				comment := fmt.Sprintf("Earned him an outstanding %s%% score. %s", m[1], certificationsTail)
				return []entity.Record{entity.NewRecord("Certifications 4", "SAFe Agilist").WithComments(comment)}, nil
			}),
	}
}

func proficiencyRules() []Rule {
	return []Rule{
		Fixture(SectionProficiency, "technical-proficiency",
			entity.NewRecord("Technical Proficiency", "").WithComments(proficiencyComment)),
	}
}

// group emits one record valued by capture group i, verbatim.
func group(key string, i int, comment string) DeriveFunc {
	return func(m []string, _ string) ([]entity.Record, error) {
		return []entity.Record{entity.NewRecord(key, m[i]).WithComments(comment)}, nil
	}
}

// trimmedGroup is group with surrounding whitespace removed from the value.
func trimmedGroup(key string, i int, comment string) DeriveFunc {
	return func(m []string, _ string) ([]entity.Record, error) {
		return []entity.Record{entity.NewRecord(key, strings.TrimSpace(m[i])).WithComments(comment)}, nil
	}
}

// dated emits one record whose value is capture group i as a DD-Mon-YY date.
func dated(key string, i int) DeriveFunc {
	return func(m []string, _ string) ([]entity.Record, error) {
		d, err := NormalizeDate(m[i])
		if err != nil {
			return nil, err
		}
		return []entity.Record{entity.NewRecord(key, d)}, nil
	}
}

func stripCommas(s string) string { return strings.ReplaceAll(s, ",", "") }

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
