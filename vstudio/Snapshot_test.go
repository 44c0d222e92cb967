package vstudio

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/syncproj/internal/base"
)

func TestSnapshotRoundTrip(t *testing.T) {
	solution := newTestSolution()
	rich := newRichTestProject()
	solution.AddProject(rich, solution.FindProjectByName("libs"))

	source := base.StringFingerprint(writeSolutionString(t, solution))

	for _, format := range base.CompressionFormats() {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := SaveSnapshot(&buf, &Snapshot{Source: source, Solution: solution}, format); err != nil {
				t.Fatalf("save snapshot: %v", err)
			}

			loaded, err := LoadSnapshot(&buf)
			if err != nil {
				t.Fatalf("load snapshot: %v", err)
			}
			if loaded.Source != source {
				t.Errorf("source fingerprint mismatch: %v != %v", loaded.Source, source)
			}

			if diff := cmp.Diff(writeSolutionString(t, solution), writeSolutionString(t, loaded.Solution)); diff != "" {
				t.Errorf("solution mismatch after snapshot (-want +got):\n%s", diff)
			}
			reloaded := loaded.Solution.FindProjectByName(rich.Name)
			if reloaded == nil {
				t.Fatalf("project %q missing from snapshot", rich.Name)
			}
			if diff := cmp.Diff(writeProjectString(t, rich), writeProjectString(t, reloaded)); diff != "" {
				t.Errorf("project mismatch after snapshot (-want +got):\n%s", diff)
			}
			if reloaded.Parent == nil || reloaded.Parent.Name != "libs" {
				t.Errorf("snapshot lost the solution tree")
			}
		})
	}
}

func TestLoadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := LoadSnapshot(bytes.NewReader([]byte{0xFF, 1, 2, 3})); err == nil {
		t.Errorf("expected an error for an unknown compression format")
	}
	if _, err := LoadSnapshot(bytes.NewReader(nil)); err == nil {
		t.Errorf("expected an error for an empty snapshot")
	}
}
