package main

import "testing"

func TestModelsCommandListsSpecs(t *testing.T) {
	stdout, _, err := runCLI(t, "", "models")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	for _, expect := range []string{"Model", "Relative speed", "tiny", "base", "small", "medium", "large", "74M"} {
		requireContains(t, stdout, expect)
	}
}
