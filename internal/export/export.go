package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/linscrape/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatTable Format = "table"
)

// Kind selects the row shape: one row per post, or one row per job.
type Kind string

const (
	KindHashtags Kind = "hashtags"
	KindProfiles Kind = "profiles"
)

type WriteOptions struct {
	ColorEnabled bool
}

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

// WriteResults serializes the aggregated result set. JSON keeps the nested
// target -> envelope object; every tabular format goes through the same
// Rows projection.
func WriteResults(w io.Writer, results *models.ResultSet, kind Kind, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatCSV:
		return writeDelimited(w, results, kind, ',')
	case FormatTSV:
		return writeDelimited(w, results, kind, '\t')
	default:
		return writeTable(w, results, kind, opts)
	}
}

func writeJSON(w io.Writer, results *models.ResultSet) error {
	byTarget := map[string]models.Envelope{}
	for _, env := range results.Envelopes() {
		byTarget[env.Target] = env
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(byTarget)
}

func writeDelimited(w io.Writer, results *models.ResultSet, kind Kind, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(Header(kind)); err != nil {
		return err
	}
	for _, env := range results.Envelopes() {
		for _, row := range Rows(env) {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, results *models.ResultSet, kind Kind, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := strings.Join(Header(kind), "\t")
	if opts.ColorEnabled {
		output := termenv.NewOutput(w)
		header = output.String(header).Bold().String()
	}
	fmt.Fprintln(tw, header)
	for _, env := range results.Envelopes() {
		for _, row := range Rows(env) {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

// Header returns the column set for a row kind. Tabular rows denormalize
// the envelope's target key and scrape date onto every leaf item.
func Header(kind Kind) []string {
	if kind == KindProfiles {
		return []string{
			"profile_id",
			"scraping_date",
			"name",
			"email",
			"skills",
			"job_position",
			"job_date_range",
			"job_company_name",
			"job_company_industry",
			"job_company_employees",
			"job_location",
			"job_location_city",
			"job_location_country",
		}
	}
	return []string{
		"hashtag",
		"scraping_date",
		"post_id",
		"username",
		"author_profile_id",
		"author_description",
		"published",
		"text",
		"data_id",
	}
}

// Rows flattens one envelope: one row per post, or one row per job for
// profiles. A null payload contributes zero rows, as does a profile with
// no parseable jobs.
func Rows(env models.Envelope) [][]string {
	switch {
	case env.Posts != nil:
		return postRows(env)
	case env.Profile != nil:
		return profileRows(env)
	default:
		return nil
	}
}

func postRows(env models.Envelope) [][]string {
	ids := make([]string, 0, len(env.Posts))
	for id := range env.Posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		post := env.Posts[id]
		rows = append(rows, []string{
			env.Target,
			env.ScrapingDate,
			post.PostID,
			post.Username,
			post.AuthorProfileID,
			post.AuthorDescription,
			post.Published,
			post.Text,
			post.DataID,
		})
	}
	return rows
}

func profileRows(env models.Envelope) [][]string {
	profile := env.Profile
	skills := strings.Join(profile.Skills, ", ")

	rows := make([][]string, 0, len(profile.Jobs))
	for _, job := range profile.Jobs {
		rows = append(rows, []string{
			env.Target,
			env.ScrapingDate,
			profile.Name,
			profile.Email,
			skills,
			job.Position,
			job.DateRange,
			job.Company.Name,
			job.Company.Industry,
			job.Company.Employees,
			job.Location.Location,
			job.Location.City,
			job.Location.Country,
		})
	}
	return rows
}
