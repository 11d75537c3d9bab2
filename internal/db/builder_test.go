package db

import (
	"strings"
	"testing"
)

func TestNewIndex_Build(t *testing.T) {
	def, err := NewIndex("visearch:org-1:shoes:idx").
		Prefix("visearch:org-1:shoes:vec:").
		Tag("level").
		VectorHNSW("vector", 512, DistanceCosine, 32, 400).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if def.StorageType != StorageHash {
		t.Errorf("storage = %s, want HASH", def.StorageType)
	}
	if len(def.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(def.Fields))
	}
	if def.Fields[1].VectorDim != 512 || def.Fields[1].VectorAlgo != VectorHNSW {
		t.Errorf("unexpected vector field: %+v", def.Fields[1])
	}
}

func TestBuild_RejectsMissingVectorDim(t *testing.T) {
	_, err := NewIndex("idx").VectorFlat("vector", 0, DistanceCosine).Build()
	if err == nil {
		t.Fatal("expected error for zero vector dim")
	}
}

func TestBuild_RejectsInvalidName(t *testing.T) {
	_, err := NewIndex("bad name!").Tag("level").Build()
	if err == nil || !strings.Contains(err.Error(), "invalid characters") {
		t.Fatalf("expected invalid-name error, got %v", err)
	}
}

func TestBuild_RejectsDuplicateFields(t *testing.T) {
	_, err := NewIndex("idx").Tag("level").Tag("level").Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate-field error, got %v", err)
	}
}
