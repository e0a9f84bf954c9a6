package model

import "time"

// Dirent is one entry of a repository directory listing
type Dirent struct {
	Name     string
	Kind     string // "dir" or "file"
	Revision int64
	Author   string
	Date     time.Time
}
