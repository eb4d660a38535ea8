package sweep

// ESBDatasetPath is the sorted test-only mirror of the ESB benchmark
// datasets, which streams much faster than the full upstream sets.
const ESBDatasetPath = "hf-audio/esb-datasets-test-only-sorted"

// ESBDatasets is the full ESB test suite. Order is fixed so logs and
// score reports line up across runs.
var ESBDatasets = []DatasetSpec{
	{Path: ESBDatasetPath, Name: "ami", Split: "test"},
	{Path: ESBDatasetPath, Name: "earnings22", Split: "test"},
	{Path: ESBDatasetPath, Name: "gigaspeech", Split: "test"},
	{Path: ESBDatasetPath, Name: "librispeech", Split: "test.clean"},
	{Path: ESBDatasetPath, Name: "librispeech", Split: "test.other"},
	{Path: ESBDatasetPath, Name: "spgispeech", Split: "test"},
	{Path: ESBDatasetPath, Name: "tedlium", Split: "test"},
	{Path: ESBDatasetPath, Name: "voxpopuli", Split: "test"},
	{Path: ESBDatasetPath, Name: "common_voice", Split: "test"},
}

// DefaultModels is every whisper checkpoint covered by a full sweep.
var DefaultModels = []string{
	"tiny.en",
	"small.en",
	"base.en",
	"medium.en",
	"large-v1",
	"large-v2",
	"large-v3",
}

// DefaultSettings runs unbatched on the first GPU over every sample.
var DefaultSettings = Settings{
	Device:         0,
	BatchSize:      1,
	MaxEvalSamples: -1,
}
