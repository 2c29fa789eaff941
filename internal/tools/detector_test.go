package tools

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(installed map[string]string) LookPathFunc {
	return func(name string) (string, error) {
		if p, ok := installed[name]; ok {
			return p, nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
}

func TestDetector_Detect(t *testing.T) {
	d := NewDetectorWithLookPath(fakeLookPath(map[string]string{
		Htop:    "/usr/bin/htop",
		Kubectl: "/usr/local/bin/kubectl",
	}))

	a := d.Detect([]string{Htop, Btop, K9s, Kubectl})

	path, ok := a.Path(Htop)
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/htop", path)
	assert.True(t, a.Installed(Kubectl))
	assert.False(t, a.Installed(Btop))
	assert.False(t, a.Installed("never-asked"))
	assert.Equal(t, []string{Htop, Btop, K9s, Kubectl}, a.Names())
}

func TestDetector_Lines(t *testing.T) {
	d := NewDetectorWithLookPath(fakeLookPath(map[string]string{Htop: "/usr/bin/htop"}))
	a := d.Detect([]string{Htop, K9s})

	assert.Equal(t, []string{
		"htop: AVAILABLE (/usr/bin/htop)",
		"k9s: NOT INSTALLED",
	}, a.Lines())
	assert.Equal(t, "htop: AVAILABLE (/usr/bin/htop)\nk9s: NOT INSTALLED", a.String())
}

func TestDetector_Idempotent(t *testing.T) {
	d := NewDetectorWithLookPath(fakeLookPath(map[string]string{Docker: "/usr/bin/docker"}))
	names := []string{Docker, Lazydocker, Docker}

	first := d.Detect(names)
	second := d.Detect(names)

	assert.Equal(t, first.Lines(), second.Lines())
	assert.Equal(t, first.Names(), second.Names())
	assert.Len(t, first.Names(), 2, "duplicates are collapsed")
}

func TestDetector_LookupErrorsAreAbsence(t *testing.T) {
	d := NewDetectorWithLookPath(func(string) (string, error) {
		return "", errors.New("permission denied")
	})
	a := d.Detect([]string{Htop})
	assert.False(t, a.Installed(Htop))
	assert.Equal(t, "htop: NOT INSTALLED", a.String())
}

func TestAvailability_ZeroValue(t *testing.T) {
	var a Availability
	assert.False(t, a.Installed(Htop))
	assert.Empty(t, a.String())
}
