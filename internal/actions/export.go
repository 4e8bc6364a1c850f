package actions

import (
	"strings"

	"github.com/urfave/cli/v2"

	"songshelf/internal/display"
)

// ExportPlaylist writes the playlist to a CSV file
func ExportPlaylist(c *cli.Context) error {
	destFile := c.String("csv")

	// Ensure destFile has .csv extension
	if !strings.HasSuffix(strings.ToLower(destFile), ".csv") {
		destFile += ".csv"
	}

	p, _, err := openPorter(c)
	if err != nil {
		return err
	}
	if err := p.ExportCSV(destFile); err != nil {
		return err
	}

	display.New(c.App.Writer).Line("Exported %s to %s.", display.Summary(p.Playlist().Len()), destFile)
	return nil
}
