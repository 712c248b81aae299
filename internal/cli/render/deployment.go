package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
)

// DeploymentRenderer writes the result of a deploy run
type DeploymentRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format config.OutputFormat) *DeploymentRenderer {
	if format == "" {
		format = config.OutputText
	}
	return &DeploymentRenderer{
		out:    out,
		format: format,
	}
}

// deploymentRecord is the structured form of a deployment
type deploymentRecord struct {
	Contract        string `json:"contract" yaml:"contract"`
	Address         string `json:"address" yaml:"address"`
	TransactionHash string `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber" yaml:"blockNumber"`
	GasUsed         uint64 `json:"gasUsed" yaml:"gasUsed"`
	Deployer        string `json:"deployer" yaml:"deployer"`
	Network         string `json:"network" yaml:"network"`
	ChainID         uint64 `json:"chainId" yaml:"chainId"`
}

// RenderStart announces the deploy run
func (r *DeploymentRenderer) RenderStart() error {
	_, err := fmt.Fprintln(r.out, "deploy start")
	return err
}

// Render writes the confirmed deployment
func (r *DeploymentRenderer) Render(deployment *models.Deployment) error {
	switch r.format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(toRecord(deployment), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal deployment: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case config.OutputYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(toRecord(deployment)); err != nil {
			return fmt.Errorf("failed to marshal deployment: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintf(r.out, "%s address: %s\n", deployment.ContractName, deployment.Address.Hex())
		return err
	}
}

func toRecord(d *models.Deployment) deploymentRecord {
	return deploymentRecord{
		Contract:        d.ContractName,
		Address:         d.Address.Hex(),
		TransactionHash: d.TxHash.Hex(),
		BlockNumber:     d.BlockNumber,
		GasUsed:         d.GasUsed,
		Deployer:        d.Deployer.Hex(),
		Network:         d.Network,
		ChainID:         d.ChainID,
	}
}

var _ Renderer[*models.Deployment] = (*DeploymentRenderer)(nil)
