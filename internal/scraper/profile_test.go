package scraper

import (
	"testing"

	"github.com/jimezsa/linscrape/internal/browser"
)

const experienceHTML = `
<section id="experience-section"><ul>
  <li>
    <a href="/company/acme/"></a>
    <div class="pv-entity__summary-info">
      <h3>Staff Engineer</h3>
      <span class="pv-entity__secondary-title">Acme</span>
      <div class="pv-entity__date-range"><span>Dates</span><span>2020 - Present</span></div>
      <div class="pv-entity__location"><span>Location</span><span>Berlin, Germany</span></div>
    </div>
  </li>
  <li class="pv-entity__position-group-role-item-fading-timeline">
    <a href="/company/grouped/"></a>
    <div class="pv-entity__summary-info"><h3>Grouped roles placeholder</h3></div>
  </li>
  <li>
    <div class="pv-entity__summary-info">
      <h3>Intern</h3>
      <span class="pv-entity__secondary-title">No Link Inc</span>
    </div>
  </li>
</ul></section>`

const profileHTML = `
<html><body>
<div class="pv-top-card--list"><span>Jane Doe</span><span>other</span></div>
` + experienceHTML + `
</body></html>`

const contactOverlayHTML = `
<html><body>
<div class="pv-top-card--list"><span>Jane Doe</span></div>
<section class="pv-contact-info__contact-type ci-email"><a>jane@example.com</a></section>
` + experienceHTML + `
</body></html>`

const skillsExpandedHTML = `
<html><body>
<div class="pv-top-card--list"><span>Jane Doe</span></div>
<li class="pv-skill-category-entity"><span class="pv-skill-category-entity__name-text">Go</span></li>
<li class="pv-skill-category-entity"><span class="pv-skill-category-entity__name-text">Distributed Systems</span></li>
` + experienceHTML + `
</body></html>`

const companyHTML = `
<html><body>
<div class="org-top-card-summary-info-list__info-item">Software Development</div>
<a data-control-name="topcard_see_all_employees">See all 250 employees</a>
</body></html>`

func newProfileFake() *browser.Fake {
	fake := browser.NewFake()
	fake.Pages[ProfileURL("jane-doe")] = profileHTML
	fake.Pages["https://www.linkedin.com/company/acme/"] = companyHTML
	fake.ClickPages[contactInfoText] = contactOverlayHTML
	fake.ClickPages[modalDismissSel] = profileHTML
	fake.ClickPages[skillsRevealSel] = skillsExpandedHTML
	fake.FailClicks[seeMoreSel] = true
	return fake
}

func TestScrapeProfile(t *testing.T) {
	fake := newProfileFake()
	session := newTestSession(fake, 3)

	env := session.ScrapeProfile("jane-doe", 10)
	if env.IsError() {
		t.Fatal("expected a profile payload")
	}

	profile := env.Profile
	if profile.Name != "Jane Doe" {
		t.Fatalf("name = %q", profile.Name)
	}
	if profile.Email != "jane@example.com" {
		t.Fatalf("email = %q", profile.Email)
	}

	if len(profile.Skills) != 2 || profile.Skills[0] != "Go" {
		t.Fatalf("skills = %v", profile.Skills)
	}

	// The grouped-roles placeholder and the entry without a company link
	// are both discarded.
	if len(profile.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(profile.Jobs))
	}
	job := profile.Jobs[0]
	if job.Position != "Staff Engineer" || job.Company.Name != "Acme" {
		t.Fatalf("job = %+v", job)
	}
	if job.DateRange != "2020 - Present" {
		t.Fatalf("date range = %q", job.DateRange)
	}
	if job.Location.City != "Berlin" || job.Location.Country != "Germany" {
		t.Fatalf("location = %+v", job.Location)
	}
	if job.Company.Industry != "Software Development" {
		t.Fatalf("industry = %q", job.Company.Industry)
	}
	if job.Company.Employees != "250" {
		t.Fatalf("employees = %q", job.Company.Employees)
	}
}

func TestScrapeProfileMissingReveals(t *testing.T) {
	fake := newProfileFake()
	fake.FailClicks[contactInfoText] = true
	fake.FailClicks[skillsRevealSel] = true
	// Without company enrichment the job still parses from the profile.
	delete(fake.Pages, "https://www.linkedin.com/company/acme/")

	session := newTestSession(fake, 3)
	env := session.ScrapeProfile("jane-doe", 10)
	if env.IsError() {
		t.Fatal("missing reveals must not fail the profile")
	}

	profile := env.Profile
	if profile.Email != "" {
		t.Fatalf("expected empty email, got %q", profile.Email)
	}
	if profile.Skills == nil || len(profile.Skills) != 0 {
		t.Fatalf("absent skills affordance should give an empty list, got %v", profile.Skills)
	}
	if len(profile.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(profile.Jobs))
	}
	if job := profile.Jobs[0]; job.Company.Industry != "" || job.Company.Employees != "" {
		t.Fatalf("company details should be empty, got %+v", job.Company)
	}
}

func TestScrapeProfilesUnavailableContinues(t *testing.T) {
	fake := newProfileFake()
	fake.Redirects[ProfileURL("ghost")] = []string{unavailableURL}

	session := newTestSession(fake, 3)
	results := session.ScrapeProfiles([]string{"ghost", "jane-doe"}, 10)

	ghost, ok := results.Get("ghost")
	if !ok || !ghost.IsError() {
		t.Fatalf("ghost should carry a null payload, got %+v", ghost)
	}

	jane, ok := results.Get("jane-doe")
	if !ok || jane.IsError() {
		t.Fatal("run must continue past an unavailable target")
	}
}
