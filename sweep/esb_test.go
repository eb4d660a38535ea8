package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxbench/voxbench/sweep"
)

func TestESBDatasets(t *testing.T) {
	assert.Len(t, sweep.ESBDatasets, 9)

	want := []sweep.DatasetSpec{
		{Path: sweep.ESBDatasetPath, Name: "ami", Split: "test"},
		{Path: sweep.ESBDatasetPath, Name: "earnings22", Split: "test"},
		{Path: sweep.ESBDatasetPath, Name: "gigaspeech", Split: "test"},
		{Path: sweep.ESBDatasetPath, Name: "librispeech", Split: "test.clean"},
		{Path: sweep.ESBDatasetPath, Name: "librispeech", Split: "test.other"},
		{Path: sweep.ESBDatasetPath, Name: "spgispeech", Split: "test"},
		{Path: sweep.ESBDatasetPath, Name: "tedlium", Split: "test"},
		{Path: sweep.ESBDatasetPath, Name: "voxpopuli", Split: "test"},
		{Path: sweep.ESBDatasetPath, Name: "common_voice", Split: "test"},
	}
	assert.Equal(t, want, sweep.ESBDatasets)
}

func TestDefaultModels(t *testing.T) {
	want := []string{
		"tiny.en",
		"small.en",
		"base.en",
		"medium.en",
		"large-v1",
		"large-v2",
		"large-v3",
	}
	assert.Equal(t, want, sweep.DefaultModels)
}

func TestDefaultSettings(t *testing.T) {
	assert.Equal(t, 0, sweep.DefaultSettings.Device)
	assert.Equal(t, 1, sweep.DefaultSettings.BatchSize)
	assert.Equal(t, -1, sweep.DefaultSettings.MaxEvalSamples)
}

func TestDatasetSpecString(t *testing.T) {
	spec := sweep.DatasetSpec{Path: sweep.ESBDatasetPath, Name: "librispeech", Split: "test.clean"}
	assert.Equal(t, "librispeech/test.clean", spec.String())
}
