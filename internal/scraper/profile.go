package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/linscrape/internal/models"
)

// Profile page selectors.
const (
	profileTopCardSel = ".pv-top-card--list"
	contactInfoText   = "Contact info"
	contactEmailSel   = ".pv-contact-info__contact-type.ci-email a"
	modalDismissSel   = ".artdeco-modal__dismiss"
	skillsRevealSel   = ".pv-skills-section__additional-skills"
	skillNameSel      = ".pv-skill-category-entity__name-text"
	experienceListSel = "#experience-section ul"
	summaryInfoSel    = ".pv-entity__summary-info"
	companyTitleSel   = ".pv-entity__secondary-title"
	dateRangeSel      = ".pv-entity__date-range span"
	jobLocationSel    = ".pv-entity__location span"
	seeMoreSel        = ".pv-profile-section__see-more-inline"

	// roleGroupClass marks a grouped-roles placeholder inside the
	// experience list; those entries carry no job of their own.
	roleGroupClass = "pv-entity__position-group-role-item-fading-timeline"

	// Company page selectors.
	companyIndustrySel  = ".org-top-card-summary-info-list__info-item"
	companyEmployeesSel = `a[data-control-name="topcard_see_all_employees"]`
)

// maxSeeMoreClicks bounds the folded-section expansion pass.
const maxSeeMoreClicks = 5

// ScrapeProfiles scrapes each profile identifier sequentially on this
// session and aggregates the envelopes.
func (s *Session) ScrapeProfiles(ids []string, maxScrolls int) *models.ResultSet {
	results := models.NewResultSet()
	for _, id := range ids {
		env := s.ScrapeProfile(id, maxScrolls)
		if results.Add(env) {
			s.logger.Warn().Str("target", env.Target).Msg("duplicate target, earlier result overwritten")
		}
	}
	return results
}

// ScrapeProfile scrapes one public profile. Jobs are read last: filling in
// company details navigates the session away from the profile page.
func (s *Session) ScrapeProfile(id string, maxScrolls int) models.Envelope {
	id = sanitize(strings.TrimSpace(id))
	target := ProfileURL(id)

	var (
		profile   *models.Profile
		truncated bool
	)
	err := s.withRetry(target, func() error {
		var err error
		truncated, err = s.loadFullPage(maxScrolls)
		if err != nil {
			return err
		}
		s.expandSections()

		doc, err := s.snapshot()
		if err != nil {
			return err
		}

		p := models.Profile{
			Name:  extractProfileName(doc),
			Email: s.revealEmail(),
		}
		p.Skills = s.revealSkills()

		jobsDoc, err := s.snapshot()
		if err != nil {
			return err
		}
		p.Jobs = s.scrapeJobs(jobsDoc)

		profile = &p
		return nil
	})

	env := models.NewEnvelope(id, time.Now())
	if err != nil {
		s.logger.Warn().Str("profile", id).Err(err).Msg("profile abandoned")
		return env
	}

	env.Profile = profile
	env.Truncated = truncated
	s.logger.Info().Str("profile", id).Int("jobs", len(profile.Jobs)).Msg("profile scraped")
	return env
}

// expandSections clicks through the inline "see more" affordances that
// fold long profile sections.
func (s *Session) expandSections() {
	for i := 0; i < maxSeeMoreClicks; i++ {
		if err := s.browser.Click(seeMoreSel); err != nil {
			return
		}
		s.sleep(s.delays.RevealSettle)
	}
}

func extractProfileName(doc *goquery.Document) string {
	return sanitize(strings.TrimSpace(doc.Find(profileTopCardSel).Children().First().Text()))
}

// revealEmail opens the contact-info overlay, reads the email field and
// dismisses the overlay again. All three steps are independently
// best-effort; a missing overlay just means no email.
func (s *Session) revealEmail() string {
	if err := s.browser.ClickByText("a", contactInfoText); err != nil {
		return ""
	}
	s.sleep(s.delays.RevealSettle)

	email := ""
	if doc, err := s.snapshot(); err == nil {
		email = fieldText(doc.Selection, contactEmailSel)
	}
	// The overlay may already be gone; ignore a failed dismiss.
	_ = s.browser.Click(modalDismissSel)
	return email
}

// revealSkills clicks the additional-skills affordance and reads the
// expanded skill names. An absent affordance skips the section entirely.
func (s *Session) revealSkills() []string {
	skills := []string{}
	if err := s.browser.Click(skillsRevealSel); err != nil {
		return skills
	}
	s.sleep(s.delays.RevealSettle)

	doc, err := s.snapshot()
	if err != nil {
		return skills
	}
	doc.Find(skillNameSel).Each(func(_ int, sel *goquery.Selection) {
		if name := sanitize(strings.TrimSpace(sel.Text())); name != "" {
			skills = append(skills, name)
		}
	})
	return skills
}

// jobEntry is one experience item as rendered, before company enrichment.
type jobEntry struct {
	position   string
	company    string
	dateRange  string
	location   string
	companyURL string
}

// extractJobEntries reads the experience list from a snapshot. Grouped-role
// placeholders are skipped, and entries without a company link are
// discarded as unparseable.
func extractJobEntries(doc *goquery.Document) []jobEntry {
	var entries []jobEntry
	doc.Find(experienceListSel).First().ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
		if item.HasClass(roleGroupClass) || item.Find("."+roleGroupClass).Length() > 0 {
			return
		}

		info := item.Find(summaryInfoSel).First()
		entry := jobEntry{
			position:   sanitize(strings.TrimSpace(info.Find("h3").First().Text())),
			company:    sanitize(strings.TrimSpace(info.Find(companyTitleSel).First().Text())),
			dateRange:  sanitize(strings.TrimSpace(info.Find(dateRangeSel).Eq(1).Text())),
			location:   sanitize(strings.TrimSpace(info.Find(jobLocationSel).Eq(1).Text())),
			companyURL: absoluteURL(item.Find("a").First().AttrOr("href", "")),
		}
		if entry.companyURL == "" {
			return
		}
		entries = append(entries, entry)
	})
	return entries
}

// scrapeJobs enriches each retained experience entry with company details,
// which requires visiting the company page.
func (s *Session) scrapeJobs(doc *goquery.Document) []models.Job {
	entries := extractJobEntries(doc)
	jobs := make([]models.Job, 0, len(entries))
	for _, entry := range entries {
		industry, employees := s.companyDetails(entry.companyURL)
		jobs = append(jobs, models.Job{
			Position:  entry.position,
			DateRange: entry.dateRange,
			Location:  models.NewLocation(entry.location),
			Company: models.Company{
				Name:      entry.company,
				Industry:  industry,
				Employees: employees,
			},
		})
	}
	return jobs
}

// companyDetails reads industry and employee count off a company page,
// each independently best-effort.
func (s *Session) companyDetails(companyURL string) (industry, employees string) {
	if err := s.browser.Navigate(companyURL); err != nil {
		return "", ""
	}
	s.sleep(s.delays.PageSettle)

	doc, err := s.snapshot()
	if err != nil {
		return "", ""
	}
	industry = fieldText(doc.Selection, companyIndustrySel)
	employees = employeeCount(fieldText(doc.Selection, companyEmployeesSel))
	return industry, employees
}

// employeeCount pulls the count token out of a label like
// "See all 10,001+ employees".
func employeeCount(label string) string {
	head, _, ok := strings.Cut(label, " employees")
	if !ok {
		return ""
	}
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
