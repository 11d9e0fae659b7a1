package hermes

const (
	SubjectAnalysisCompleted = "menuscore.analysis.completed"

	StreamName   = "MENUSCORE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectDatasetImported(datasetID string) string {
	return "menuscore.dataset." + datasetID + ".imported"
}

// SubjectDatasetImportedAll matches every dataset import.
const SubjectDatasetImportedAll = "menuscore.dataset.*.imported"
