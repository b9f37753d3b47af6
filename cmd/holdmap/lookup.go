package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/holdmap/internal/httputil"
	"github.com/banshee-data/holdmap/internal/wall"
)

var (
	lookupServer string
	lookupShow   bool

	httpClient httputil.HTTPClient = &http.Client{Timeout: 10 * time.Second}
)

var lookupCmd = &cobra.Command{
	Use:   "lookup ID...",
	Short: "Print where holds are",
	Long: `Print the panel, grid, column, row and angle of each hold.

With --server the lookup is made against a running "holdmap serve"; adding
--show also highlights the last hold on that server's wall.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupServer, "server", "", "base URL of a running holdmap server")
	lookupCmd.Flags().BoolVar(&lookupShow, "show", false, "highlight the hold on the server's wall (needs --server)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	if lookupShow && lookupServer == "" {
		return fmt.Errorf("--show needs --server")
	}

	var find func(id string) (wall.Description, error)
	if lookupServer != "" {
		rc := &remoteClient{base: strings.TrimRight(lookupServer, "/"), client: httpClient}
		find = rc.lookup
		if lookupShow {
			find = rc.show
		}
	} else {
		session, err := newSession(fsys, cfg, nil)
		if err != nil {
			return err
		}
		find = func(id string) (wall.Description, error) {
			res, err := session.Lookup(id)
			return res.Describe(), err
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPANEL\tGRID\tCOLUMN\tROW\tANGLE")
	failed := 0
	for _, id := range args {
		d, err := find(id)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Panel, d.Grid, d.Column, d.Row, d.Angle)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d holds not found", failed, len(args))
	}
	return nil
}

// remoteClient talks to the JSON API of a running server.
type remoteClient struct {
	base   string
	client httputil.HTTPClient
}

func (rc *remoteClient) lookup(id string) (wall.Description, error) {
	req, err := http.NewRequest(http.MethodGet, rc.base+"/api/holds/"+url.PathEscape(id), nil)
	if err != nil {
		return wall.Description{}, err
	}
	return rc.do(req)
}

func (rc *remoteClient) show(id string) (wall.Description, error) {
	form := url.Values{"hold": {id}}
	req, err := http.NewRequest(http.MethodPost, rc.base+"/api/show", strings.NewReader(form.Encode()))
	if err != nil {
		return wall.Description{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return rc.do(req)
}

func (rc *remoteClient) do(req *http.Request) (wall.Description, error) {
	resp, err := rc.client.Do(req)
	if err != nil {
		return wall.Description{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return wall.Description{}, err
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return wall.Description{}, fmt.Errorf("%s", e.Error)
		}
		return wall.Description{}, fmt.Errorf("server returned %s", resp.Status)
	}
	var d wall.Description
	if err := json.Unmarshal(body, &d); err != nil {
		return wall.Description{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return d, nil
}
