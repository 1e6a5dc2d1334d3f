package services

import (
	"context"
	"fmt"
)

// UnimplementedProvider always fails. It stands in for a vendor that has not
// been wired yet.
type UnimplementedProvider struct {
	modelName string
}

func NewUnimplementedProvider(modelName string) *UnimplementedProvider {
	return &UnimplementedProvider{modelName: modelName}
}

func (p *UnimplementedProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return "", fmt.Errorf("model %q: %w", p.modelName, ErrNotImplemented)
}
