package config

import "testing"

func TestLoadPipelineDefaults(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "")
	t.Setenv("RELEVANCE_THRESHOLD", "")
	t.Setenv("MAX_DOMAINS", "")
	t.Setenv("SEARCH_MAX_RESULTS", "")
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("CHUNK_OVERLAP", "")
	t.Setenv("SYNTH_CONTEXT_BUDGET", "")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.7 {
		t.Fatalf("expected default confidence threshold 0.7, got %f", cfg.ConfidenceThreshold)
	}
	if cfg.RelevanceThreshold != 0.7 {
		t.Fatalf("expected default relevance threshold 0.7, got %f", cfg.RelevanceThreshold)
	}
	if cfg.MaxDomains != 3 {
		t.Fatalf("expected default max domains 3, got %d", cfg.MaxDomains)
	}
	if cfg.SearchMaxResults != 5 {
		t.Fatalf("expected default search max results 5, got %d", cfg.SearchMaxResults)
	}
	if cfg.ChunkSize != 4000 || cfg.ChunkOverlap != 500 {
		t.Fatalf("expected default chunking 4000/500, got %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.SynthContextBudget != 6000 {
		t.Fatalf("expected default context budget 6000, got %d", cfg.SynthContextBudget)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "0.8")
	t.Setenv("MAX_DOMAINS", "2")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o-mini")
	t.Setenv("LLM_RATE_LIMIT_RPS", "1.5")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.8 {
		t.Fatalf("expected confidence threshold override, got %f", cfg.ConfidenceThreshold)
	}
	if cfg.MaxDomains != 2 {
		t.Fatalf("expected max domains 2, got %d", cfg.MaxDomains)
	}
	if cfg.AzureOpenAIDeployment != "gpt-4o-mini" {
		t.Fatalf("expected deployment override, got %q", cfg.AzureOpenAIDeployment)
	}
	if cfg.LLMRateLimitRPS != 1.5 {
		t.Fatalf("expected rate limit 1.5, got %f", cfg.LLMRateLimitRPS)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_DOMAINS", "many")
	t.Setenv("RELEVANCE_THRESHOLD", "high")

	cfg := Load()
	if cfg.MaxDomains != 3 {
		t.Fatalf("expected fallback max domains 3, got %d", cfg.MaxDomains)
	}
	if cfg.RelevanceThreshold != 0.7 {
		t.Fatalf("expected fallback relevance threshold 0.7, got %f", cfg.RelevanceThreshold)
	}
}
