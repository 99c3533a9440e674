// File path: internal/data/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/retriever"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestReloadBuildsIndex(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "bukhari.json", `{"hadiths":[{"arabic":"a","english":"Actions are judged by intentions.","hadithnumber":1}]}`)
	writeFixture(t, dir, "malik.json", `{"hadiths":[{"text":"Leave what you doubt.","id":"7"}]}`)

	r := retriever.New()
	orch, err := New(corpus.NewLoader(filepath.Join(dir, "%s.json"), time.Second), WithRetriever(r))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r.Ready() {
		t.Fatalf("index must not be ready before the first load")
	}

	st, err := orch.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if st.Records != 2 || st.Indexed != 2 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if !r.Ready() || r.Size() != 2 {
		t.Fatalf("expected index of 2 docs, got %d", r.Size())
	}
	if len(st.Collections) != len(corpus.All()) {
		t.Fatalf("expected a result per collection, got %d", len(st.Collections))
	}
	if got := orch.Status(); got.Records != 2 || got.LoadedAt.IsZero() {
		t.Fatalf("status not recorded: %+v", got)
	}
	matches := r.Search("judged by intentions")
	if len(matches) == 0 || matches[0].Record.Reference != "Sahih al-Bukhari 1" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestReloadReplacesPreviousCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "muslim.json", `{"hadiths":[{"english":"Religion is sincere advice.","hadithnumber":55}]}`)
	orch, err := New(corpus.NewLoader(filepath.Join(dir, "%s.json"), time.Second))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := orch.Reload(context.Background()); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	writeFixture(t, dir, "muslim.json", `{"hadiths":[{"english":"Modesty is part of faith.","hadithnumber":36},{"english":"None of you believes until he loves for his brother.","hadithnumber":45}]}`)
	st, err := orch.Reload(context.Background())
	if err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if st.Records != 2 || orch.Retriever().Size() != 2 {
		t.Fatalf("expected the new corpus to replace the old one: %+v", st)
	}
	for _, m := range orch.Retriever().Search("Religion is sincere advice") {
		if m.Record.Reference == "Sahih Muslim 55" {
			t.Fatalf("stale record still indexed: %+v", m)
		}
	}
}

func TestReloadKeepsCollectionWhenSourceFails(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "bukhari.json", `{"hadiths":[{"arabic":"a","english":"The moon was split into two parts.","hadithnumber":3637}]}`)
	orch, err := New(corpus.NewLoader(filepath.Join(dir, "%s.json"), time.Second))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if st, err := orch.Reload(context.Background()); err != nil || st.Indexed != 1 {
		t.Fatalf("first reload: %+v %v", st, err)
	}
	if err := os.Remove(filepath.Join(dir, "bukhari.json")); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}
	st, err := orch.Reload(context.Background())
	if err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if st.Records != 1 || st.Indexed != 1 {
		t.Fatalf("failed collection must keep its previous records: %+v", st)
	}
	if st.Collections[0].Error == "" || st.Collections[0].Records != 1 {
		t.Fatalf("expected degraded bukhari result with kept records: %+v", st.Collections[0])
	}
	if got := orch.Retriever().Search("moon split"); len(got) == 0 {
		t.Fatalf("expected the kept record to stay searchable")
	}
}

func TestReloadCancelled(t *testing.T) {
	orch, err := New(corpus.NewLoader(filepath.Join(t.TempDir(), "%s.json"), time.Second))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Reload(ctx); err == nil {
		t.Fatalf("expected cancelled reload to fail")
	}
	if orch.Retriever().Ready() {
		t.Fatalf("a cancelled load must not build an index")
	}
}

func TestNewRequiresLoader(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error without a loader")
	}
}
