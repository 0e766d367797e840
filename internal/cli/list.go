package cli

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modgrip/internal/domain"
	"modgrip/internal/format"
	"modgrip/internal/profile"
	"modgrip/internal/ui/logic"
)

var (
	listQuery string
	listSort  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the installed mods of a profile",
	Long: `Print the installed mods of a profile as a table.

The query uses the same syntax as the search box, including the
category: and deprecated: prefixes.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only list mods matching the query")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort column: relevance, downloads, name, owner or size")
}

func runList(cmd *cobra.Command, args []string) error {
	log.SetOutput(io.Discard)

	file, _ := loadConfig(nil)
	cfg := withFlags(file)
	tr := translator(cfg)

	sortColumn := cfg.UISettings.Sort
	if listSort != "" {
		sortColumn = listSort
	}
	options := logic.DefaultSort()
	if sortColumn != "" {
		column, err := logic.ParseSortColumn(sortColumn)
		if err != nil {
			return err
		}
		options = logic.Prioritize(options, column)
	}

	p, err := profile.NewLoader(nil, nil, nil, "").Load(cmd.Context(), cfg.Profile.Manifest)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	fetch := logic.NewFetcher(logic.SourceFunc(func() []*domain.ModPackage { return p.Mods }), 0)
	result := fetch(listQuery, options)

	tag := tr.Locale().Tag()
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tOWNER\tVERSION\tDOWNLOADS\tSIZE")
	for page := 0; page < result.Pages(); page++ {
		for _, mod := range result.Page(page) {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				mod.Name,
				mod.Owner,
				mod.Version.VersionNumber,
				format.Compact(tag, float64(mod.Version.Downloads)),
				format.HumanizeFileSize(mod.Version.FileSize, true))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\n%s\n", tr.Tf("modlist.discovered_msg", result.Count))
	return nil
}
