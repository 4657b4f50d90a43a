package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jimezsa/linscrape/internal/browser"
	"github.com/jimezsa/linscrape/internal/config"
	"github.com/jimezsa/linscrape/internal/export"
	"github.com/jimezsa/linscrape/internal/models"
	"github.com/jimezsa/linscrape/internal/network"
	"github.com/jimezsa/linscrape/internal/scraper"
	"github.com/muesli/termenv"
)

type HashtagsCmd struct {
	Targets string `arg:"" optional:"" help:"Comma-separated hashtags. Optional when --input is provided."`
	Input   string `help:"Path to a file with one hashtag per line."`
	Output  string `name:"output" short:"o" help:"Write output to a file."`
	ScrapeOptions
}

type ProfilesCmd struct {
	Targets string `arg:"" optional:"" help:"Comma-separated profile IDs. Optional when --input is provided."`
	Input   string `help:"Path to a file with one profile ID per line."`
	Output  string `name:"output" short:"o" help:"Write output to a file."`
	ScrapeOptions
}

type RunCmd struct {
	Hashtags       string `help:"Comma-separated hashtags."`
	Profiles       string `help:"Comma-separated profile IDs."`
	HashtagsInput  string `help:"Path to a file with one hashtag per line."`
	ProfilesInput  string `help:"Path to a file with one profile ID per line."`
	HashtagsOutput string `help:"Write hashtag results to a file."`
	ProfilesOutput string `help:"Write profile results to a file."`
	ScrapeOptions
}

type ScrapeOptions struct {
	Email       string  `help:"Account email." env:"LINSCRAPE_EMAIL"`
	Password    string  `help:"Account password." env:"LINSCRAPE_PASSWORD"`
	Depth       int     `help:"Maximum scroll passes per page."`
	Format      string  `help:"Output format: json, csv, tsv, table." enum:",json,csv,tsv,table" default:""`
	Wait        int     `help:"Seconds to wait before retrying a challenged page."`
	Multiplier  float64 `help:"Backoff multiplier between challenge retries."`
	MaxAttempts int     `help:"Maximum attempts per target."`
	Jitter      float64 `help:"Random jitter fraction added to challenge waits."`
	Proxies     string  `help:"Comma-separated proxy URLs." env:"LINSCRAPE_PROXIES"`
	DumpDir     string  `help:"Directory for challenge screenshots."`
	Headed      bool    `help:"Run the browser with a visible window."`
	NoSandbox   bool    `help:"Disable the Chrome sandbox (container environments)."`
}

func (h *HashtagsCmd) Run(ctx *Context) error {
	return runScrape(ctx, h.Targets, h.Input, h.Output, export.KindHashtags, h.ScrapeOptions)
}

func (p *ProfilesCmd) Run(ctx *Context) error {
	return runScrape(ctx, p.Targets, p.Input, p.Output, export.KindProfiles, p.ScrapeOptions)
}

func runScrape(ctx *Context, raw string, inputPath string, outputPath string, kind export.Kind, opts ScrapeOptions) error {
	targets, err := resolveTargets(raw, inputPath)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		ctx.UI.Infof("Nothing to scrape.")
		return nil
	}

	results, err := scrapeTargets(ctx, kind, targets, opts)
	if err != nil {
		return err
	}

	if err := writeOutput(ctx, results, kind, opts.Format, outputPath); err != nil {
		return err
	}

	printScrapeSummary(ctx, results)
	return nil
}

// Run drives both kinds in one invocation with one browser session each,
// scraping concurrently. Results are written after both sessions finish.
func (r *RunCmd) Run(ctx *Context) error {
	hashtags, err := resolveTargets(r.Hashtags, r.HashtagsInput)
	if err != nil {
		return err
	}
	profiles, err := resolveTargets(r.Profiles, r.ProfilesInput)
	if err != nil {
		return err
	}
	if len(hashtags) == 0 && len(profiles) == 0 {
		ctx.UI.Infof("Nothing to scrape.")
		return nil
	}

	type outcome struct {
		results *models.ResultSet
		err     error
	}
	var (
		wg              sync.WaitGroup
		hashtagsOutcome outcome
		profilesOutcome outcome
	)

	if len(hashtags) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hashtagsOutcome.results, hashtagsOutcome.err = scrapeTargets(ctx, export.KindHashtags, hashtags, r.ScrapeOptions)
		}()
	}
	if len(profiles) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			profilesOutcome.results, profilesOutcome.err = scrapeTargets(ctx, export.KindProfiles, profiles, r.ScrapeOptions)
		}()
	}
	wg.Wait()

	if err := errors.Join(hashtagsOutcome.err, profilesOutcome.err); err != nil {
		return err
	}

	if hashtagsOutcome.results != nil {
		if err := writeOutput(ctx, hashtagsOutcome.results, export.KindHashtags, r.Format, r.HashtagsOutput); err != nil {
			return err
		}
		printScrapeSummary(ctx, hashtagsOutcome.results)
	}
	if profilesOutcome.results != nil {
		if err := writeOutput(ctx, profilesOutcome.results, export.KindProfiles, r.Format, r.ProfilesOutput); err != nil {
			return err
		}
		printScrapeSummary(ctx, profilesOutcome.results)
	}
	return nil
}

// scrapeTargets owns the full browser lifecycle for one target list: proxy
// selection, launch, login, scrape, release. Credentials are validated
// before any browser process starts.
func scrapeTargets(ctx *Context, kind export.Kind, targets []string, opts ScrapeOptions) (*models.ResultSet, error) {
	creds := scraper.Credentials{
		Email:    strings.TrimSpace(opts.Email),
		Password: opts.Password,
	}
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("credentials required: pass --email/--password or set LINSCRAPE_EMAIL and LINSCRAPE_PASSWORD")
	}

	cfg := ctx.Config

	proxies, err := config.LoadProxies(opts.Proxies)
	if err != nil {
		return nil, err
	}
	var (
		rotator *network.Rotator
		proxy   *url.URL
	)
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, time.Duration(cfg.ProxyBanSecs)*time.Second)
		if err != nil {
			return nil, err
		}
		proxy, err = rotator.Next()
		if err != nil {
			return nil, err
		}
	}

	browserOpts := browser.Options{
		Headless:  cfg.Headless && !opts.Headed,
		NoSandbox: opts.NoSandbox,
		UserAgent: cfg.UserAgent,
	}
	if proxy != nil {
		browserOpts.ProxyURL = proxy.String()
	}

	chrome, err := browser.NewChrome(context.Background(), browserOpts)
	if err != nil {
		return nil, err
	}

	session := scraper.NewSession(chrome, ctx.Logger, scraper.SessionOptions{
		Backoff: scraper.Backoff{
			InitialWait: time.Duration(defaultInt(opts.Wait, cfg.InitialWaitSecs)) * time.Second,
			Multiplier:  defaultFloat(opts.Multiplier, cfg.BackoffMultiplier),
			MaxAttempts: defaultInt(opts.MaxAttempts, cfg.MaxAttempts),
			Jitter:      opts.Jitter,
		},
		ChallengeDumpDir: opts.DumpDir,
	})
	defer func() {
		if rotator != nil && session.ChallengeCount() > 0 {
			rotator.Report(proxy)
		}
		if closeErr := session.Close(); closeErr != nil {
			ctx.Logger.Warn().Err(closeErr).Msg("closing browser")
		}
	}()

	if err := session.Login(creds); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	switch kind {
	case export.KindProfiles:
		return session.ScrapeProfiles(targets, defaultInt(opts.Depth, cfg.ProfileDepth)), nil
	default:
		return session.ScrapeHashtags(targets, defaultInt(opts.Depth, cfg.HashtagDepth)), nil
	}
}

func writeOutput(ctx *Context, results *models.ResultSet, kind export.Kind, formatFlag string, outputPath string) error {
	format, err := resolveFormat(ctx, formatFlag, outputPath)
	if err != nil {
		return err
	}

	writer := ctx.Out
	var file *os.File
	if outputPath != "" {
		file, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && outputPath == ""
	return export.WriteResults(writer, results, kind, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
	})
}

// resolveTargets merges the comma-separated argument with an optional input
// file, one target per line. Comment lines start with //, a # prefix is a
// hashtag. Duplicates are dropped keeping first-seen order.
func resolveTargets(raw string, inputPath string) ([]string, error) {
	var lines []string
	if strings.TrimSpace(inputPath) != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("read --input %q: %w", inputPath, err)
		}
		lines = strings.Split(string(data), "\n")
	}

	targets := make([]string, 0, len(lines))
	seen := make(map[string]struct{})
	appendUnique := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" || strings.HasPrefix(value, "//") {
			return
		}
		if _, exists := seen[value]; exists {
			return
		}
		seen[value] = struct{}{}
		targets = append(targets, value)
	}

	for _, part := range strings.Split(raw, ",") {
		appendUnique(part)
	}
	for _, line := range lines {
		appendUnique(line)
	}

	return targets, nil
}

func printScrapeSummary(ctx *Context, results *models.ResultSet) {
	if ctx == nil || ctx.Err == nil {
		return
	}

	var ok, failed int
	for _, env := range results.Envelopes() {
		if env.IsError() {
			failed++
		} else {
			ok++
		}
	}
	fmt.Fprintf(ctx.Err, "summary: targets=%d ok=%d failed=%d\n", results.Len(), ok, failed)
}

func resolveFormat(ctx *Context, formatFlag string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if formatFlag != "" {
		return export.ParseFormat(formatFlag)
	}
	if outputPath != "" {
		return export.FormatJSON, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatJSON, nil
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func defaultFloat(value, fallback float64) float64 {
	if value <= 0 {
		return fallback
	}
	return value
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
