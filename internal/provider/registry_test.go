package provider

import (
	"context"
	"errors"
	"testing"
)

// MockProvider is a mock implementation of Provider for testing
type MockProvider struct {
	name      string
	available bool
	raw       string
	err       error

	lastT2C      *TextToCommandRequest
	lastDiagnose *DiagnoseRequest
	lastCtx      context.Context
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Available() bool {
	return m.available
}

func (m *MockProvider) TextToCommand(ctx context.Context, req *TextToCommandRequest) (*TextToCommandResponse, error) {
	m.lastT2C, m.lastCtx = req, ctx
	if m.err != nil {
		return nil, m.err
	}
	return &TextToCommandResponse{
		Suggestions:  ParseCommandResponse(m.raw),
		Raw:          m.raw,
		ProviderName: m.name,
	}, nil
}

func (m *MockProvider) Diagnose(ctx context.Context, req *DiagnoseRequest) (*DiagnoseResponse, error) {
	m.lastDiagnose, m.lastCtx = req, ctx
	if m.err != nil {
		return nil, m.err
	}
	return &DiagnoseResponse{
		Raw:          m.raw,
		ProviderName: m.name,
	}, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry("", &MockProvider{name: "openai"})
	if r.GetPreferred() != "auto" {
		t.Errorf("GetPreferred() = %q, want auto", r.GetPreferred())
	}
	if _, ok := r.Get("openai"); !ok {
		t.Error("openai should be registered")
	}
	if _, ok := r.Get("anthropic"); ok {
		t.Error("anthropic should not be registered")
	}
}

func TestRegistry_GetBest_Auto(t *testing.T) {
	tests := []struct {
		name      string
		openai    bool
		anthropic bool
		want      string
	}{
		{"both available prefers openai", true, true, "openai"},
		{"only anthropic", false, true, "anthropic"},
		{"only openai", true, false, "openai"},
		{"none available falls back to first by priority", false, false, "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry("auto",
				&MockProvider{name: "anthropic", available: tt.anthropic},
				&MockProvider{name: "openai", available: tt.openai},
			)
			p, err := r.GetBest()
			if err != nil {
				t.Fatalf("GetBest() error = %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("GetBest() = %q, want %q", p.Name(), tt.want)
			}
		})
	}
}

func TestRegistry_GetBest_Preferred(t *testing.T) {
	r := NewRegistry("anthropic",
		&MockProvider{name: "openai", available: true},
		&MockProvider{name: "anthropic", available: false},
	)
	p, err := r.GetBest()
	if err != nil {
		t.Fatalf("GetBest() error = %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("GetBest() = %q, want the preferred provider even when unavailable", p.Name())
	}

	r = NewRegistry("google", &MockProvider{name: "openai", available: true})
	if _, err := r.GetBest(); err == nil {
		t.Error("GetBest() should fail for an unregistered preference")
	}
}

func TestRegistry_GetBest_Empty(t *testing.T) {
	_, err := NewRegistry("auto").GetBest()
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("GetBest() error = %v, want ErrNoProvider", err)
	}
}

func TestRegistry_ListAvailable(t *testing.T) {
	r := NewRegistry("auto",
		&MockProvider{name: "openai", available: true},
		&MockProvider{name: "anthropic", available: false},
	)

	avail := r.ListAvailable()
	if len(avail) != 1 || avail[0] != "openai" {
		t.Errorf("ListAvailable() = %v", avail)
	}

	if _, ok := r.Get("anthropic"); !ok {
		t.Error("Get(anthropic) not registered")
	}
}
