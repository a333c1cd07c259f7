package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	l := Init("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("root", "/usr/local/cuda").Debug("found CUDA toolkit")
	assert.Contains(t, buf.String(), "found CUDA toolkit")
	assert.Contains(t, buf.String(), "root=/usr/local/cuda")
}

func TestInitInvalidLevel(t *testing.T) {
	l := Init("chatty", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
