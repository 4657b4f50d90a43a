package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version  VersionCmd  `cmd:"" help:"Print version."`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration."`
	Hashtags HashtagsCmd `cmd:"" help:"Scrape posts from hashtag feeds."`
	Profiles ProfilesCmd `cmd:"" help:"Scrape public profiles."`
	Run      RunCmd      `cmd:"" help:"Scrape hashtags and profiles in one invocation."`
}

func NewCLI() *CLI {
	return &CLI{}
}
