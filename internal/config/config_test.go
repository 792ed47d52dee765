package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("escrita do config falhou: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: sentinelwatch\n"))
	if err != nil {
		t.Fatalf("load não deveria falhar: %v", err)
	}

	if cfg.Queue.URL != "redis://localhost:6379" {
		t.Fatalf("queue.url padrão inesperado: %q", cfg.Queue.URL)
	}
	if cfg.Queue.EventsQueue != "events_queue" || cfg.Queue.EnrichedQueue != "enriched_queue" {
		t.Fatalf("filas padrão inesperadas: %+v", cfg.Queue)
	}
	if cfg.Queue.PopTimeout != 5*time.Second {
		t.Fatalf("pop_timeout padrão esperado 5s, obtido %v", cfg.Queue.PopTimeout)
	}
	if cfg.Reasoning.Enabled {
		t.Fatal("reasoning deveria vir desligado por padrão")
	}
	if cfg.Dataset.MinEvents != 50 {
		t.Fatalf("dataset.min_events padrão esperado 50, obtido %d", cfg.Dataset.MinEvents)
	}
}

func TestLoadParsesDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, "queue:\n  pop_timeout: 2s\n  idle_backoff: 250ms\n"))
	if err != nil {
		t.Fatalf("load não deveria falhar: %v", err)
	}
	if cfg.Queue.PopTimeout != 2*time.Second {
		t.Fatalf("pop_timeout esperado 2s, obtido %v", cfg.Queue.PopTimeout)
	}
	if cfg.Queue.IdleBackoff != 250*time.Millisecond {
		t.Fatalf("idle_backoff esperado 250ms, obtido %v", cfg.Queue.IdleBackoff)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("ausência de arquivo deveria cair nos defaults: %v", err)
	}
	if cfg.Queue.EventsQueue != "events_queue" {
		t.Fatalf("defaults não aplicados: %+v", cfg.Queue)
	}
}

func TestValidateReasoningRequiresAPIKey(t *testing.T) {
	_, err := Load(writeConfig(t, "reasoning:\n  enabled: true\n"))
	if err == nil {
		t.Fatal("reasoning ligado sem api_key deveria falhar")
	}
	if !strings.Contains(err.Error(), "reasoning.api_key") {
		t.Fatalf("erro deveria apontar reasoning.api_key: %v", err)
	}
}

func TestValidateRejectsEmptyQueueName(t *testing.T) {
	_, err := Load(writeConfig(t, "queue:\n  events_queue: \"\"\n"))
	if err == nil {
		t.Fatal("fila de entrada vazia deveria falhar na validação")
	}
}

func TestValidateRejectsNegativeBackoff(t *testing.T) {
	_, err := Load(writeConfig(t, "queue:\n  idle_backoff: -1s\n"))
	if err == nil {
		t.Fatal("idle_backoff negativo deveria falhar na validação")
	}
}
