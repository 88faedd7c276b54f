package domain

import "strings"

// Domain is one tag from the closed catalogue of tooling knowledge areas.
type Domain string

const (
	DomainGithub           Domain = "Github"
	DomainJenkins          Domain = "Jenkins"
	DomainArtifactory      Domain = "Artifactory"
	DomainSonarScan        Domain = "SonarScan"
	DomainAPI              Domain = "API"
	DomainTerraform        Domain = "Terraform"
	DomainEKS              Domain = "EKS"
	DomainAWS              Domain = "AWS"
	DomainAzure            Domain = "Azure"
	DomainCloudSecurity    Domain = "CloudSecurity"
	DomainSecretManagement Domain = "SecretManagement"
	DomainALMx             Domain = "ALMx"
)

// DomainInfo couples a catalogue entry with the description embedded in prompts
// and the statically configured expansion adjacency used by the router.
type DomainInfo struct {
	Name        Domain   `yaml:"name"`
	Description string   `yaml:"description"`
	ExpandsTo   []Domain `yaml:"expands_to"`
}

// Catalog is the ordered closed set of domains. Order matters: the first entry
// is the deterministic classification fallback.
type Catalog struct {
	entries []DomainInfo
	index   map[string]int
}

func NewCatalog(entries []DomainInfo) *Catalog {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[strings.ToLower(string(e.Name))] = i
	}
	return &Catalog{entries: entries, index: index}
}

// DefaultCatalog returns the built-in domain set used when no override file is
// configured.
func DefaultCatalog() *Catalog {
	return NewCatalog([]DomainInfo{
		{Name: DomainGithub, Description: "source control, repositories, pull requests, branch policies, Github Actions", ExpandsTo: []Domain{DomainJenkins, DomainALMx}},
		{Name: DomainJenkins, Description: "CI pipelines, build jobs, agents, Jenkinsfile configuration", ExpandsTo: []Domain{DomainAWS, DomainAzure}},
		{Name: DomainArtifactory, Description: "binary artifact storage, repositories, package promotion and retention", ExpandsTo: []Domain{DomainJenkins}},
		{Name: DomainSonarScan, Description: "static code analysis, quality gates, coverage and scan configuration", ExpandsTo: []Domain{DomainJenkins, DomainGithub}},
		{Name: DomainAPI, Description: "internal API gateway, API design, publishing and subscription", ExpandsTo: []Domain{DomainCloudSecurity}},
		{Name: DomainTerraform, Description: "infrastructure as code, modules, state management, plan and apply workflows", ExpandsTo: []Domain{DomainAWS, DomainAzure}},
		{Name: DomainEKS, Description: "managed Kubernetes on AWS, clusters, node groups, workload deployment", ExpandsTo: []Domain{DomainAWS, DomainTerraform}},
		{Name: DomainAWS, Description: "Amazon Web Services accounts, IAM, networking and core services", ExpandsTo: []Domain{DomainEKS, DomainCloudSecurity}},
		{Name: DomainAzure, Description: "Microsoft Azure subscriptions, resource groups and core services", ExpandsTo: []Domain{DomainCloudSecurity}},
		{Name: DomainCloudSecurity, Description: "cloud security policies, guardrails, compliance scanning", ExpandsTo: []Domain{DomainAWS, DomainAzure}},
		{Name: DomainSecretManagement, Description: "secret storage, rotation, vault access and credential injection", ExpandsTo: []Domain{DomainCloudSecurity}},
		{Name: DomainALMx, Description: "application lifecycle management, work items, releases and traceability", ExpandsTo: []Domain{DomainGithub}},
	})
}

// Default is the deterministic fallback domain: the first catalogue entry.
func (c *Catalog) Default() Domain {
	return c.entries[0].Name
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Entries() []DomainInfo {
	return c.entries
}

// Resolve maps a raw name to a catalogue domain, case-insensitively.
func (c *Catalog) Resolve(name string) (Domain, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return c.entries[i].Name, true
}

// ExpansionFor returns the static expansion adjacency for a domain. The slice
// is owned by the catalogue and must not be mutated.
func (c *Catalog) ExpansionFor(d Domain) []Domain {
	i, ok := c.index[strings.ToLower(string(d))]
	if !ok {
		return nil
	}
	return c.entries[i].ExpandsTo
}
