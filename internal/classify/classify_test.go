// File path: internal/classify/classify_test.go
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTableLoads(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)

	got := c.Classify("Sahih al-Bukhari 3637")
	assert.Equal(t, Mutawatir, got.Grade)
	assert.Contains(t, got.Notes, "moon")
}

func TestClassifyIsCaseInsensitiveSubstring(t *testing.T) {
	c := New([]Entry{
		{References: []string{"Bukhari 110", "Muslim 3"}, Notes: "lying about the Prophet"},
		{References: []string{"Bukhari 110"}, Notes: "shadowed"},
	})
	got := c.Classify("SAHIH AL-BUKHARI 110")
	assert.Equal(t, Classification{Grade: Mutawatir, Notes: "lying about the Prophet"}, got)
	assert.Equal(t, "Mutawatir (lying about the Prophet)", got.String())

	assert.Equal(t, Mutawatir, c.Classify("see sahih muslim 3, chapter 2").Grade)
}

func TestClassifyRespectsReferenceBoundaries(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Mutawatir, c.Classify("Sahih Muslim 3").Grade)
	assert.Equal(t, Ahad, c.Classify("Sahih Muslim 35").Grade)
	assert.Equal(t, Ahad, c.Classify("Sahih Muslim 1300").Grade)
	assert.Equal(t, Ahad, c.Classify("Sahih al-Bukhari 1101").Grade)
	assert.Equal(t, Mutawatir, c.Classify("(Sahih al-Bukhari 110)").Grade)

	var tagged int
	for n := 1; n <= 7563; n++ {
		if c.Classify(fmt.Sprintf("Sahih Muslim %d", n)).Grade == Mutawatir {
			tagged++
		}
	}
	assert.Equal(t, 7, tagged, "only the curated Muslim references are Mutawatir")
}

func TestClassifyDefaultsToAhad(t *testing.T) {
	c := New([]Entry{{References: []string{"Bukhari 110"}, Notes: "n"}, {References: []string{"  "}}})
	assert.Equal(t, 1, c.Len())
	got := c.Classify("Sunan an-Nasai 42")
	assert.Equal(t, Classification{Grade: Ahad}, got)
	assert.Equal(t, "Ahad", got.String())

	var nilClassifier *Classifier
	assert.Equal(t, Ahad, nilClassifier.Classify("Sahih al-Bukhari 110").Grade)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - references: [\"Musnad Ahmad 7\"]\n    notes: custom\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", c.Classify("Musnad Ahmad 7").Notes)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("entries: [unterminated"))
	assert.Error(t, err)
}
