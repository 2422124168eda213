package config

import (
	"strings"

	"github.com/eci-voterfind/voterfind/internal/candidate"
	"github.com/eci-voterfind/voterfind/internal/rank"
)

// RankConfig projects the loaded Config onto the ranker's tunables,
// leaving the AO outside-substitution cap table at its compiled-in
// default shape since no option here overrides it per-band.
func (c *Config) RankConfig() rank.Config {
	rc := rank.DefaultConfig()
	rc.ExactOnly = c.ExactOnly
	rc.MaxConPerWord = c.MaxConPerWord
	rc.MaxConTotal2W = c.MaxConTotal2W
	rc.MaxConTotal3PlusW = c.MaxConTotal3PlusW
	rc.PFMaxSubsFor2W = c.PFMaxSubsFor2W
	rc.PFMaxSubsFor3W = c.PFMaxSubsFor3W
	rc.PFMaxExtraSuffixPerWord = c.PFMaxExtraSuffixPerWord
	rc.PFGlobalExtraMultiplier = c.PFGlobalExtraMultiplier
	rc.AddFirstWordMaxAddInMulti = c.AddFirstWordMaxAddInMulti
	return rc
}

// PrefixParams projects the configured key-builder resolutions onto the
// candidate generator's Params.
func (c *Config) PrefixParams() candidate.Params {
	return candidate.Params{
		PrefixLenStrict: c.PrefixLenStrict,
		PrefixLenExact:  c.PrefixLenExact,
		PrefixLenLoose:  c.PrefixLenLoose,
	}
}

// ParseScope maps the configured scope name to the candidate package's
// Scope enum, defaulting to ScopeAnywhere for anything unrecognized.
func (c *Config) ParseScope() candidate.Scope {
	switch strings.ToLower(strings.TrimSpace(c.Scope)) {
	case "voter":
		return candidate.ScopeVoter
	case "relative":
		return candidate.ScopeRelative
	default:
		return candidate.ScopeAnywhere
	}
}
