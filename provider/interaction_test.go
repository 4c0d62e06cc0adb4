package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/linguist/provider"
)

type echoProvider struct {
	name string
}

func (p *echoProvider) Name() string                       { return p.name }
func (p *echoProvider) IsAvailable(_ context.Context) bool { return true }

func (p *echoProvider) Execute(_ context.Context, in string) (string, error) {
	return "echo:" + in, nil
}

var _ provider.RequestResponse[string, string] = (*echoProvider)(nil)

type failingProvider struct{}

func (p *failingProvider) Name() string                       { return "fail" }
func (p *failingProvider) IsAvailable(_ context.Context) bool { return true }
func (p *failingProvider) Execute(_ context.Context, _ string) (string, error) {
	return "", errors.New("HTTP 503: overloaded")
}

func TestFunc(t *testing.T) {
	p := provider.Func("upper", func(_ context.Context, in string) (int, error) {
		return len(in), nil
	})
	if p.Name() != "upper" {
		t.Errorf("name = %q", p.Name())
	}
	if !p.IsAvailable(context.Background()) {
		t.Error("expected available")
	}
	n, err := p.Execute(context.Background(), "four")
	if err != nil || n != 4 {
		t.Errorf("Execute = %d, %v", n, err)
	}
}
