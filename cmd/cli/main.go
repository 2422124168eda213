// Command cli is an interactive terminal search tool over the engine: a
// query box feeds engine.Engine.Search, and bubbles/list shows live
// ranked results, each with the ranker's breadcrumb as its description.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eci-voterfind/voterfind/internal/config"
	"github.com/eci-voterfind/voterfind/internal/engine"
)

var (
	dbPath = flag.String("db", "", "bbolt index snapshot path (empty = config default)")
	acList = flag.String("acs", "", "comma-separated Assembly Constituency ids to search (required)")
)

func main() {
	flag.Parse()
	cfg := config.Load()
	if *dbPath != "" {
		cfg.IndexDBPath = *dbPath
	}

	var acs []string
	for _, ac := range strings.Split(*acList, ",") {
		ac = strings.TrimSpace(ac)
		if ac != "" {
			acs = append(acs, ac)
		}
	}
	if len(acs) == 0 {
		fmt.Fprintln(os.Stderr, "cli: --acs is required (comma-separated AC ids)")
		os.Exit(1)
	}

	factory := engine.NewBackendFactory(&engine.BackendConfig{
		PreferredOrder: []string{"bbolt", "memory"},
		BoltPath:       cfg.IndexDBPath,
	})
	eng := engine.New(factory.Best(), cfg.RankConfig())
	eng.Prefix = cfg.PrefixParams()

	p := tea.NewProgram(newModel(eng, cfg, acs), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cli: %v\n", err)
		os.Exit(1)
	}
}
