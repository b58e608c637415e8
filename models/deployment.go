package models

import "fmt"

// DeploymentStatus belongs to the pipeline cards and is unrelated to
// SubscriptionStatus even where the badges look alike.
type DeploymentStatus string

const (
	DeploymentDeployed  DeploymentStatus = "deployed"
	DeploymentDeploying DeploymentStatus = "deploying"
	DeploymentFailed    DeploymentStatus = "failed"
)

var DeploymentStatuses = []DeploymentStatus{DeploymentDeployed, DeploymentDeploying, DeploymentFailed}

func (s DeploymentStatus) Valid() bool {
	switch s {
	case DeploymentDeployed, DeploymentDeploying, DeploymentFailed:
		return true
	default:
		return false
	}
}

func ParseDeploymentStatus(s string) (DeploymentStatus, error) {
	status := DeploymentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("deployment status %q: %w", s, ErrInvalidEnum)
	}
	return status, nil
}

type Deployment struct {
	ID          string           `json:"id" yaml:"id"`
	Pipeline    string           `json:"pipeline" yaml:"pipeline"`
	Environment string           `json:"environment" yaml:"environment"`
	Branch      string           `json:"branch" yaml:"branch"`
	Commit      string           `json:"commit" yaml:"commit"`
	Status      DeploymentStatus `json:"status" yaml:"status"`
	Duration    string           `json:"duration,omitempty" yaml:"duration"`
	DeployedAt  string           `json:"deployed_at,omitempty" yaml:"deployed_at"`
}
