package models

type FileStatus string

const (
	StatusModified  FileStatus = "M"
	StatusAdded     FileStatus = "A"
	StatusDeleted   FileStatus = "D"
	StatusRenamed   FileStatus = "R"
	StatusCopied    FileStatus = "C"
	StatusUntracked FileStatus = "??"
	StatusUnmerged  FileStatus = "U"
)

type FileChange struct {
	Path         string
	Status       FileStatus // Working tree status
	StagedStatus FileStatus // Staging area status
	IsStaged     bool
	IsUntracked  bool
}
