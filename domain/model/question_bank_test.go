package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadQuestionBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preguntas.json")
	err := os.WriteFile(path, []byte(`{"preguntas":["¿Edad?","¿Por qué?"]}`), 0o644)
	assert.NoError(t, err)

	bank, err := LoadQuestionBank(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, bank.Len())
	assert.Equal(t, "¿Edad?", bank.Question(0))
	assert.Equal(t, "¿Por qué?", bank.Question(1))
}

func TestLoadQuestionBank_Missing(t *testing.T) {
	_, err := LoadQuestionBank(filepath.Join(t.TempDir(), "no-such.json"))
	assert.Error(t, err)
}

func TestLoadQuestionBank_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preguntas.json")
	err := os.WriteFile(path, []byte(`{"preguntas":[]}`), 0o644)
	assert.NoError(t, err)

	_, err = LoadQuestionBank(path)
	assert.Error(t, err)
}
