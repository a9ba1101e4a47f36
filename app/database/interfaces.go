package database

// RunRepositoryInterface is implemented by RunRepository and by test stubs
type RunRepositoryInterface interface {
	RecordRun(run Run) (int64, error)
	GetLastRun(vertical string) (*Run, error)
	ListRecent(limit int) ([]Run, error)
}
