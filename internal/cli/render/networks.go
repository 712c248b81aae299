package render

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// Render renders the list of networks as a table
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"NETWORK", "CHAIN ID", "RPC", "EXPLORER", "ACCOUNT"})
	for _, network := range result.Networks {
		name := network.Name
		if network.Default {
			name += " *"
			if r.color {
				name = color.New(color.FgGreen, color.Bold).Sprint(name)
			}
		}

		if network.Error != nil {
			t.AppendRow(table.Row{name, "-", r.errorText(network.Error), "", ""})
			continue
		}

		chainID := "auto"
		if network.ChainID != 0 {
			chainID = strconv.FormatUint(network.ChainID, 10)
		}
		t.AppendRow(table.Row{name, chainID, maskRPCURL(network.RPCURL), network.Explorer, network.Account})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *NetworksRenderer) errorText(err error) string {
	if r.color {
		return color.New(color.FgRed).Sprintf("error: %v", err)
	}
	return fmt.Sprintf("error: %v", err)
}

// maskRPCURL hides everything after the host
func maskRPCURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	masked := u.Scheme + "://" + u.Host
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" {
		masked += "/***"
	}
	return masked
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
