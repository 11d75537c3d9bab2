package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:      HTTPConfig{Port: 8080},
		Database:  DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Search:    SearchConfig{DeadlineMs: 700, PartitionTimeoutMs: 250, DefaultLambda: 0.7},
		Embedding: EmbeddingConfig{BudgetAction: "warn"},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Search = SearchConfig{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("unexpected http timeouts: %+v", cfg.HTTP)
	}
	if cfg.Index.Dimension != 512 {
		t.Errorf("expected default dimension 512, got %d", cfg.Index.Dimension)
	}
	if cfg.Search.DeadlineMs != 700 || cfg.Search.PartitionTimeoutMs != 250 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Search.DefaultLambda != 0.7 {
		t.Errorf("expected default lambda 0.7, got %f", cfg.Search.DefaultLambda)
	}
	if cfg.Storage.KeyPrefix != "visearch:" {
		t.Errorf("unexpected key prefix: %s", cfg.Storage.KeyPrefix)
	}
	if cfg.ModelVersion == "" {
		t.Error("expected default model version")
	}
	if cfg.Embedding.BudgetAction != "warn" {
		t.Errorf("expected warn budget action, got %q", cfg.Embedding.BudgetAction)
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing database.addrs")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}
}

func TestValidate_LambdaOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultLambda = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for lambda > 1")
	}
}

func TestValidate_PartitionTimeoutAboveDeadline(t *testing.T) {
	cfg := validConfig()
	cfg.Search.PartitionTimeoutMs = 900
	cfg.Search.DeadlineMs = 700
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when partition timeout exceeds deadline")
	}
}

func TestValidate_EmbeddingKeyWithoutModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = "sk-test"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for api key without model")
	}
}

func TestValidate_BadBudgetAction(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.BudgetAction = "block"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown budget action")
	}
}

func TestEmbeddingEnabled(t *testing.T) {
	e := EmbeddingConfig{}
	if e.Enabled() {
		t.Error("empty embedding config must not be enabled")
	}
	e = EmbeddingConfig{APIKey: "sk-test", Model: "text-embedding-3-small"}
	if !e.Enabled() {
		t.Error("expected enabled with key and model")
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("VISEARCH_TEST_KEY", "secret")
	defer os.Unsetenv("VISEARCH_TEST_KEY")

	in := []byte("api_key: ${VISEARCH_TEST_KEY}\nbase_url: ${VISEARCH_TEST_URL:-https://api.openai.com/v1}\n")
	out := string(expandEnvVars(in))

	if out != "api_key: secret\nbase_url: https://api.openai.com/v1\n" {
		t.Errorf("unexpected expansion: %q", out)
	}
}
